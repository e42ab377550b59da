package create

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

type SessionCreator interface {
	CreateSession(ctx context.Context, req *api.CreateSessionRequest) (*api.SessionResponse, error)
}

type Request struct {
	api.CreateSessionRequest
}

type Response struct {
	response.Response
	Session api.SessionResponse `json:"session,omitempty"`
}

func New(log *slog.Logger, creator SessionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meetings.create.New"

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

		if len(req.TimeSlotIDs) == 0 {
			log.Error("time_slot_ids is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "time_slot_ids is required"))
			return
		}

		if req.StudentID == "" {
			log.Error("student is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "student is required"))
			return
		}

		session, err := creator.CreateSession(r.Context(), &req.CreateSessionRequest)

		if errors.Is(err, response.ErrLocked) {
			log.Error("resource is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "resource is locked"))
			return
		}

		if errors.Is(err, response.ErrBookingConflict) {
			log.Error("booking conflict")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.BOOKING_CONFLICT), "slot is no longer available"))
			return
		}

		if errors.Is(err, response.ErrInconsistentSelection) {
			log.Error("inconsistent selection")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.INCONSISTENT_SELECTION), "selected slots are not contiguous"))
			return
		}

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("bad request")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid session request"))
			return
		}

		if err != nil {
			log.Error("Failed to create session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create session"))
			return
		}

		log.Info("Session created", slog.Any("session", session))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Session: *session})
	}
}
