package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"slotcal-service/pkg/response"
	"slotcal-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type StatusGetter interface {
	ScopeActive(ctx context.Context, tutorID, scope string, date time.Time) (bool, error)
}

type Response struct {
	response.Response
	Active bool `json:"active"`
}

func New(log *slog.Logger, getter StatusGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.status.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := r.URL.Query()

		tutorID := query.Get("tutor")
		if tutorID == "" {
			log.Error("tutor is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "tutor is required"))
			return
		}

		scope := query.Get("scope")
		if scope == "" {
			scope = "day"
		}

		date, err := time.Parse("2006-01-02", query.Get("date"))
		if err != nil {
			log.Error("invalid date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid date"))
			return
		}

		active, err := getter.ScopeActive(r.Context(), tutorID, scope, date)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("invalid scope", slog.String("scope", scope))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid scope"))
			return
		}

		if err != nil {
			log.Error("Failed to get availability status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get availability status"))
			return
		}

		log.Info("Availability status resolved", slog.Bool("active", active))

		render.JSON(w, r, Response{Active: active})
	}
}
