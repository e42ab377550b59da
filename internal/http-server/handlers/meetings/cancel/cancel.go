package cancel

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

type SessionCanceler interface {
	CancelSession(ctx context.Context, meetingIDs []string) error
}

type Request struct {
	api.MeetingActionRequest
}

func New(log *slog.Logger, canceler SessionCanceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meetings.cancel.New"

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

		if len(req.MeetingIDs) == 0 {
			log.Error("meeting_ids is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "meeting_ids is required"))
			return
		}

		err := canceler.CancelSession(r.Context(), req.MeetingIDs)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("meetings not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "meetings not found"))
			return
		}

		if err != nil {
			log.Error("Failed to cancel session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to cancel session"))
			return
		}

		log.Info("Session canceled", slog.Int("meetings", len(req.MeetingIDs)))

		render.JSON(w, r, response.Response{})
	}
}
