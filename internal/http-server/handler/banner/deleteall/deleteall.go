package deleteall

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"promobanner/pkg/lib/api/response"
	"promobanner/pkg/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type BannersDeleter interface {
	DeleteAllBanners(ctx context.Context) (int64, error)
}

func New(log *slog.Logger, bannersDeleter BannersDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.Banner.DeleteAll.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		log.Info("deleting all banners")

		affected, err := bannersDeleter.DeleteAllBanners(r.Context())
		if err != nil {
			log.Error("internal error", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Message("Some error occurred while removing all banners."))
			return
		}

		log.Info("banners deleted", slog.Int64("count", affected))
		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.Message(fmt.Sprintf("%d Banners were deleted successfully!", affected)))
	}
}
