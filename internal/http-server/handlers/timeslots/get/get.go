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

type SlotLister interface {
	ListSlots(ctx context.Context, tutorID string, from, to time.Time, onlyAvailable *bool) ([]*api.SlotResponse, error)
}

type Response struct {
	response.Response
	Slots []api.SlotResponse `json:"slots"`
}

func New(log *slog.Logger, lister SlotLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.timeslots.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		tutorID := r.URL.Query().Get("tutor")
		if tutorID == "" {
			log.Error("tutor is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "tutor is required"))
			return
		}

		var from, to time.Time

		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				log.Error("invalid date", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid date"))
				return
			}
			from = date
			to = date.AddDate(0, 0, 1)
		} else {
			var err error
			from, err = time.Parse(time.RFC3339, r.URL.Query().Get("start_time_after"))
			if err == nil {
				to, err = time.Parse(time.RFC3339, r.URL.Query().Get("start_time_before"))
			}
			if err != nil {
				log.Error("invalid range", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date or start_time_after/start_time_before is required"))
				return
			}
		}

		var onlyAvailable *bool
		if availStr := r.URL.Query().Get("is_available"); availStr != "" {
			if avail, err := strconv.ParseBool(availStr); err == nil {
				onlyAvailable = &avail
			}
		}

		slots, err := lister.ListSlots(r.Context(), tutorID, from, to, onlyAvailable)
		if err != nil {
			log.Error("Failed to list slots", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list slots"))
			return
		}

		log.Info("Slots retrieved", slog.Int("count", len(slots)))

		result := make([]api.SlotResponse, len(slots))
		for i, slot := range slots {
			result[i] = *slot
		}

		render.JSON(w, r, Response{Slots: result})
	}
}
