package toggle

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

type BulkToggler interface {
	BulkToggle(ctx context.Context, req *api.ToggleRequest) (*api.ToggleResponse, error)
}

type Request struct {
	api.ToggleRequest
}

type Response struct {
	response.Response
	api.ToggleResponse
}

func New(log *slog.Logger, toggler BulkToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.toggle.New"

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

		result, err := toggler.BulkToggle(r.Context(), &req.ToggleRequest)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("invalid date or scope")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid date or scope"))
			return
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("scope is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "scope is locked by another operation"))
			return
		}

		if err != nil {
			log.Error("Failed to toggle availability", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to toggle availability"))
			return
		}

		log.Info("Availability toggled",
			slog.Int("created", result.Created),
			slog.Int("deleted", result.Deleted),
			slog.Bool("active", result.Active),
		)

		render.JSON(w, r, Response{ToggleResponse: *result})
	}
}
