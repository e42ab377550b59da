package replay

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

type SessionReplayer interface {
	ReplaySession(ctx context.Context, token, studentID string) (*api.SessionResponse, error)
}

type Request struct {
	api.ReplaySessionRequest
	StudentID string `json:"student,omitempty"`
}

type Response struct {
	response.Response
	Session api.SessionResponse `json:"session,omitempty"`
}

func New(log *slog.Logger, replayer SessionReplayer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meetings.replay.New"

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

		if req.IntentToken == "" {
			log.Error("intent_token is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "intent_token is required"))
			return
		}

		session, err := replayer.ReplaySession(r.Context(), req.IntentToken, req.StudentID)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("intent not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "intent not found"))
			return
		}

		if errors.Is(err, response.ErrBookingConflict) {
			log.Error("booking conflict on replay")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.BOOKING_CONFLICT), "slot is no longer available"))
			return
		}

		if errors.Is(err, response.ErrInconsistentSelection) {
			log.Error("stored selection no longer covered")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.INCONSISTENT_SELECTION), "selection is no longer covered by available slots"))
			return
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("resource is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "resource is locked"))
			return
		}

		if err != nil {
			log.Error("Failed to replay session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to replay session"))
			return
		}

		log.Info("Deferred session replayed", slog.Any("session", session))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Session: *session})
	}
}
