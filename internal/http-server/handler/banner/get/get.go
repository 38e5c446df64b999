package get

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"promobanner/internal/database/model"
	"promobanner/internal/http-server/middleware/validator"
	httpBanner "promobanner/internal/http-server/model"
	"promobanner/pkg/lib/api/response"
	"promobanner/pkg/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type BannerProvider interface {
	BannerByID(ctx context.Context, bannerID int64) (*model.Banner, error)
}

func New(log *slog.Logger, bannerProvider BannerProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.Banner.Get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		log.Info("providing banner")

		id, ok := r.Context().Value(validator.BannerIDKey).(int64)
		if !ok {
			log.Error("failed to convert to request")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Message("Error retrieving Banner."))
			return
		}

		log.Info("request decoded", slog.Int64("banner_id", id))

		banner, err := bannerProvider.BannerByID(r.Context(), id)
		if err != nil {
			log.Error("internal error", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Message(fmt.Sprintf("Error retrieving Banner with id=%d.", id)))
			return
		}
		if banner == nil {
			log.Info("banner not found")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Message(fmt.Sprintf("Cannot find Banner with id=%d.", id)))
			return
		}

		log.Info("banner provided")
		render.Status(r, http.StatusOK)
		render.JSON(w, r, httpBanner.BannerDBtoBannerHTTP(*banner))
	}
}
