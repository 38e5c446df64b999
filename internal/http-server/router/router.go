package router

import (
	"log/slog"
	"net/http"

	"promobanner/internal/database/repository"
	"promobanner/internal/http-server/handler/banner"
	"promobanner/internal/http-server/handler/banner/create"
	"promobanner/internal/http-server/handler/banner/delete"
	"promobanner/internal/http-server/handler/banner/deleteall"
	"promobanner/internal/http-server/handler/banner/get"
	"promobanner/internal/http-server/handler/banner/update"
	"promobanner/internal/http-server/handler/banner/upload"
	"promobanner/internal/http-server/middleware/logger"
	"promobanner/internal/http-server/middleware/validator"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const basePath = "/api"

// New mounts the banner API under /api.
func New(log *slog.Logger, bannerRepository repository.BannerRepository, fileUploader upload.FileUploader) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(logger.New(log))

	router.Route(basePath+"/banner", func(r chi.Router) {
		r.With(validator.CreateBanner(log)).Post("/", create.New(log, bannerRepository))
		r.Get("/", banner.New(log, bannerRepository))
		r.Get("/all", banner.NewAll(log, bannerRepository))
		r.Delete("/", deleteall.New(log, bannerRepository))
		r.Post("/upload", upload.New(log, fileUploader))

		r.Route("/{id}", func(r chi.Router) {
			r.Use(validator.BannerID(log))
			r.Get("/", get.New(log, bannerRepository))
			r.With(validator.UpdateBanner(log)).Put("/", update.New(log, bannerRepository))
			r.Delete("/", delete.New(log, bannerRepository))
		})
	})

	return router
}
