package click

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

type SegmentClicker interface {
	ClickSegment(ctx context.Context, req *api.ClickRequest) (*api.SelectionResponse, error)
}

type Request struct {
	api.ClickRequest
}

type Response struct {
	response.Response
	Selection api.SelectionResponse `json:"selection"`
}

func New(log *slog.Logger, clicker SegmentClicker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.selection.click.New"

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

		if req.TutorID == "" || req.Segment.IsZero() {
			log.Error("tutor or segment is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "tutor and segment are required"))
			return
		}

		selection, err := clicker.ClickSegment(r.Context(), &req.ClickRequest)

		if errors.Is(err, response.ErrNoticeTooShort) {
			log.Info("segment inside notice window")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.NOTICE_TOO_SHORT), "segment starts inside the notice window"))
			return
		}

		if errors.Is(err, response.ErrSegmentUnavailable) {
			log.Info("segment unavailable")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.SEGMENT_UNAVAILABLE), "segment is not available"))
			return
		}

		if errors.Is(err, response.ErrCannotSpanBlocks) {
			log.Info("selection cannot span blocks")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.CANNOT_SPAN_BLOCKS), "selection cannot span blocks"))
			return
		}

		if err != nil {
			log.Error("Failed to apply click", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to apply click"))
			return
		}

		log.Info("Selection updated", slog.Any("selection", selection))

		render.JSON(w, r, Response{Selection: *selection})
	}
}
