package bulkdelete

import (
	"context"
	"log/slog"
	"net/http"

	"slotcal-service/api"
	"slotcal-service/pkg/response"
	"slotcal-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type BulkDeleter interface {
	BulkDeleteSlots(ctx context.Context, req *api.BulkDeleteRequest) (int, error)
}

type Request struct {
	api.BulkDeleteRequest
}

type Response struct {
	response.Response
	Deleted int `json:"deleted"`
}

func New(log *slog.Logger, deleter BulkDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.timeslots.bulkdelete.New"

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

		if len(req.IDs) == 0 {
			log.Error("ids is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "ids is required"))
			return
		}

		deleted, err := deleter.BulkDeleteSlots(r.Context(), &req.BulkDeleteRequest)
		if err != nil {
			log.Error("Failed to bulk delete slots", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete slots"))
			return
		}

		log.Info("Slots deleted", slog.Int("deleted", deleted))

		render.JSON(w, r, Response{Deleted: deleted})
	}
}
