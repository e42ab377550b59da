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

type BlockGetter interface {
	RangeBlocks(ctx context.Context, tutorID string, from, to time.Time) ([]*api.BlockResponse, error)
}

type Response struct {
	response.Response
	Blocks []api.BlockResponse `json:"blocks"`
}

func New(log *slog.Logger, getter BlockGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.blocks.get.New"

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
			from, err = time.Parse(time.RFC3339, r.URL.Query().Get("from"))
			if err == nil {
				to, err = time.Parse(time.RFC3339, r.URL.Query().Get("to"))
			}
			if err != nil {
				log.Error("invalid range", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date or from/to is required"))
				return
			}
		}

		blocks, err := getter.RangeBlocks(r.Context(), tutorID, from, to)
		if err != nil {
			log.Error("Failed to get blocks", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get blocks"))
			return
		}

		log.Info("Blocks aggregated", slog.Int("count", len(blocks)))

		result := make([]api.BlockResponse, len(blocks))
		for i, b := range blocks {
			result[i] = *b
		}

		render.JSON(w, r, Response{Blocks: result})
	}
}
