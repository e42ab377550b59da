package bulkcreate

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

type BulkCreator interface {
	BulkCreateSlots(ctx context.Context, req *api.BulkCreateRequest) (int, error)
}

type Request struct {
	api.BulkCreateRequest
}

type Response struct {
	response.Response
	Created int `json:"created"`
}

func New(log *slog.Logger, creator BulkCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.timeslots.bulkcreate.New"

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

		if req.TutorID == "" || len(req.Slots) == 0 {
			log.Error("tutor or slots is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "tutor and slots are required"))
			return
		}

		created, err := creator.BulkCreateSlots(r.Context(), &req.BulkCreateRequest)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("slot times are not grid-aligned")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "slot times must match the granularity"))
			return
		}

		if err != nil {
			log.Error("Failed to bulk create slots", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create slots"))
			return
		}

		log.Info("Slots created", slog.Int("created", created))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Created: created})
	}
}
