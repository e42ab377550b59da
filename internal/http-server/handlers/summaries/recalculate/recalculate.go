package recalculate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"slotcal-service/api"
	"slotcal-service/pkg/response"
	"slotcal-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type SummaryRecalculator interface {
	RecalculateSummary(ctx context.Context, req *api.RecalculateRequest) (*api.SummaryResponse, error)
}

type Request struct {
	api.RecalculateRequest
}

type Response struct {
	response.Response
	Summary api.SummaryResponse `json:"summary"`
}

func New(log *slog.Logger, recalculator SummaryRecalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.summaries.recalculate.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if req.TutorID == "" || req.Date == "" {
			log.Error("tutor or date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "tutor and date are required"))
			return
		}

		summary, err := recalculator.RecalculateSummary(r.Context(), &req.RecalculateRequest)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("invalid date", slog.String("date", req.Date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid date"))
			return
		}

		if err != nil {
			log.Error("Failed to recalculate summary", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to recalculate summary"))
			return
		}

		log.Info("Summary recalculated", slog.String("date", summary.Date))

		render.JSON(w, r, Response{Summary: *summary})
	}
}
