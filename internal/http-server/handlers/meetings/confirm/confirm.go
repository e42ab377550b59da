package confirm

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

type SessionConfirmer interface {
	ConfirmSession(ctx context.Context, meetingIDs []string) error
}

type Request struct {
	api.MeetingActionRequest
}

func New(log *slog.Logger, confirmer SessionConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meetings.confirm.New"

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

		err := confirmer.ConfirmSession(r.Context(), req.MeetingIDs)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("meetings not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "meetings not found"))
			return
		}

		if err != nil {
			log.Error("Failed to confirm session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to confirm session"))
			return
		}

		log.Info("Session confirmed", slog.Int("meetings", len(req.MeetingIDs)))

		render.JSON(w, r, response.Response{})
	}
}
