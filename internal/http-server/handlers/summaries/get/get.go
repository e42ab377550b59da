package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"slotcal-service/api"
	"slotcal-service/pkg/response"
	"slotcal-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type SummaryLister interface {
	DailySummaries(ctx context.Context, tutorID string, from, to time.Time) ([]*api.SummaryResponse, error)
}

type Response struct {
	response.Response
	Summaries []api.SummaryResponse `json:"summaries"`
}

func New(log *slog.Logger, lister SummaryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.summaries.get.New"

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

		from, err := time.Parse("2006-01-02", query.Get("from"))
		if err != nil {
			log.Error("invalid from", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid from"))
			return
		}

		to, err := time.Parse("2006-01-02", query.Get("to"))
		if err != nil {
			log.Error("invalid to", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid to"))
			return
		}

		summaries, err := lister.DailySummaries(r.Context(), tutorID, from, to)
		if err != nil {
			log.Error("Failed to get daily summaries", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get daily summaries"))
			return
		}

		log.Info("Daily summaries fetched", slog.Int("count", len(summaries)))

		result := make([]api.SummaryResponse, len(summaries))
		for i, s := range summaries {
			result[i] = *s
		}

		render.JSON(w, r, Response{Summaries: result})
	}
}
