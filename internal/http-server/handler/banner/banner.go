package banner

import (
	"context"
	"log/slog"
	"net/http"

	"promobanner/internal/database/model"
	httpBanner "promobanner/internal/http-server/model"
	"promobanner/pkg/lib/api/response"
	"promobanner/pkg/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type BannerProvider interface {
	Banners(ctx context.Context, filter model.Filter) ([]model.Banner, error)
}

// New lists active banners.
func New(log *slog.Logger, bannerProvider BannerProvider) http.HandlerFunc {
	active := true
	return list(
		log.With(slog.String("op", "handler.Banner.New")),
		bannerProvider,
		model.Filter{Active: &active},
		"Some error occurred while retrieving active banners.",
	)
}

// NewAll lists every banner regardless of state.
func NewAll(log *slog.Logger, bannerProvider BannerProvider) http.HandlerFunc {
	return list(
		log.With(slog.String("op", "handler.Banner.NewAll")),
		bannerProvider,
		model.Filter{},
		"Some error occurred while retrieving banners.",
	)
}

func list(log *slog.Logger, bannerProvider BannerProvider, filter model.Filter, failMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := log.With(
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		log.Info("providing banners")

		banners, err := bannerProvider.Banners(r.Context(), filter)
		if err != nil {
			log.Error("internal error", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Message(failMsg))
			return
		}

		log.Info("banners provided", slog.Int("count", len(banners)))
		render.Status(r, http.StatusOK)
		render.JSON(w, r, httpBanner.BannersDBtoBannersHTTP(banners))
	}
}
