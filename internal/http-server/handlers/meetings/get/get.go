package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"slotcal-service/api"
	"slotcal-service/pkg/response"
	"slotcal-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type SessionLister interface {
	ListSessions(ctx context.Context, tutorID, studentID *string, from, to *time.Time) ([]*api.SessionResponse, error)
}

type Response struct {
	response.Response
	Sessions []api.SessionResponse `json:"sessions"`
}

func New(log *slog.Logger, lister SessionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meetings.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := r.URL.Query()

		var tutorID, studentID *string
		if v := query.Get("tutor"); v != "" {
			tutorID = &v
		}
		if v := query.Get("student"); v != "" {
			studentID = &v
		}

		if tutorID == nil && studentID == nil {
			log.Error("tutor and student are both empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "tutor or student is required"))
			return
		}

		var from, to *time.Time
		if v := query.Get("from"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				log.Error("invalid from", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid from"))
				return
			}
			from = &t
		}
		if v := query.Get("to"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				log.Error("invalid to", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid to"))
				return
			}
			to = &t
		}

		sessions, err := lister.ListSessions(r.Context(), tutorID, studentID, from, to)
		if err != nil {
			log.Error("Failed to list sessions", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list sessions"))
			return
		}

		log.Info("Sessions aggregated", slog.Int("count", len(sessions)))

		result := make([]api.SessionResponse, len(sessions))
		for i, s := range sessions {
			result[i] = *s
		}

		render.JSON(w, r, Response{Sessions: result})
	}
}
