package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"slotcal-service/api"
	"slotcal-service/pkg/response"
	"slotcal-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type CalendarGetter interface {
	MonthCalendar(ctx context.Context, tutorID string, year int, month time.Month) ([]*api.CalendarDayResponse, error)
}

type Response struct {
	response.Response
	Days []api.CalendarDayResponse `json:"days"`
}

func New(log *slog.Logger, getter CalendarGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := r.URL.Query()

		tutorID := query.Get("tutor")
		if tutorID == "" {
			log.Error("tutor is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "tutor is required"))
			return
		}

		year, err := strconv.Atoi(query.Get("year"))
		if err != nil || year < 1 {
			log.Error("invalid year", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid year"))
			return
		}

		month, err := strconv.Atoi(query.Get("month"))
		if err != nil || month < 1 || month > 12 {
			log.Error("invalid month", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid month"))
			return
		}

		days, err := getter.MonthCalendar(r.Context(), tutorID, year, time.Month(month))
		if err != nil {
			log.Error("Failed to build calendar", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to build calendar"))
			return
		}

		log.Info("Calendar built", slog.Int("days", len(days)))

		result := make([]api.CalendarDayResponse, len(days))
		for i, d := range days {
			result[i] = *d
		}

		render.JSON(w, r, Response{Days: result})
	}
}
