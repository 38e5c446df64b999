package delete

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"promobanner/internal/http-server/middleware/validator"
	"promobanner/pkg/lib/api/response"
	"promobanner/pkg/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type BannerDeleter interface {
	DeleteBanner(ctx context.Context, bannerID int64) (int64, error)
}

func New(log *slog.Logger, bannerDeleter BannerDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.Banner.Delete.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		log.Info("deleting banner")

		id, ok := r.Context().Value(validator.BannerIDKey).(int64)
		if !ok {
			log.Error("failed convert to request")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Message("Could not delete Banner."))
			return
		}

		log.Info("request decoded", slog.Int64("banner_id", id))

		affected, err := bannerDeleter.DeleteBanner(r.Context(), id)
		if err != nil {
			log.Error("internal error", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Message(fmt.Sprintf("Could not delete Banner with id=%d.", id)))
			return
		}

		render.Status(r, http.StatusOK)
		if affected == 1 {
			log.Info("banner deleted")
			render.JSON(w, r, response.Message("Banner was deleted successfully!"))
			return
		}

		log.Info("banner not found")
		render.JSON(w, r, response.Message(fmt.Sprintf("Cannot delete Banner with id=%d. Maybe Banner was not found!", id)))
	}
}
