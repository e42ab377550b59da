package deferred

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

type SessionDeferrer interface {
	DeferSession(ctx context.Context, req *api.DeferSessionRequest) (string, error)
}

type Request struct {
	api.DeferSessionRequest
}

type Response struct {
	response.Response
	IntentToken string `json:"intent_token,omitempty"`
}

func New(log *slog.Logger, deferrer SessionDeferrer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meetings.deferred.New"

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

		token, err := deferrer.DeferSession(r.Context(), &req.DeferSessionRequest)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("time_slot_ids is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "time_slot_ids is required"))
			return
		}

		if errors.Is(err, response.ErrSelectionTooShort) {
			log.Error("selection too short")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.SELECTION_TOO_SHORT), "selection is shorter than the minimum duration"))
			return
		}

		if err != nil {
			log.Error("Failed to defer session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to defer session"))
			return
		}

		log.Info("Session deferred", slog.String("intent_token", token))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{IntentToken: token})
	}
}
