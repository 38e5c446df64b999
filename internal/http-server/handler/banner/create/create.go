package create

import (
	"context"
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

const msgCreateFailed = "Some error occurred while creating the banner."

type BannerSaver interface {
	SaveBanner(ctx context.Context, banner *model.Banner) (*model.Banner, error)
}

func New(log *slog.Logger, bannerSaver BannerSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.Banner.Create.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		log.Info("creating banner")

		req, ok := r.Context().Value(validator.CreateBannerKey).(validator.CreateBannerRequest)
		if !ok {
			log.Error("failed convert to request")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Message(msgCreateFailed))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		duration := req.ParsedDuration
		banner := &model.Banner{
			Description: req.Description,
			Duration:    &duration,
			Active:      true,
			Image:       req.Image,
			Link:        req.Link,
		}

		saved, err := bannerSaver.SaveBanner(r.Context(), banner)
		if err != nil {
			log.Error("internal error", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Message(msgCreateFailed))
			return
		}

		log.Info("banner created", slog.Int64("banner_id", saved.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, httpBanner.BannerDBtoBannerHTTP(*saved))
	}
}
