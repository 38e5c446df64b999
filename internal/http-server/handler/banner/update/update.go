package update

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"promobanner/internal/database/model"
	"promobanner/internal/http-server/middleware/validator"
	"promobanner/pkg/lib/api/response"
	"promobanner/pkg/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type BannerUpdater interface {
	UpdateBanner(ctx context.Context, banner *model.Banner) (int64, error)
}

// New replaces a banner with the request body as is. A zero row count is
// reported with 200 and an explanatory message.
func New(log *slog.Logger, bannerUpdater BannerUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.Banner.Update.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		log.Info("updating banner")

		req, ok := r.Context().Value(validator.UpdateBannerKey).(validator.UpdateBannerRequest)
		if !ok {
			log.Error("failed convert to request")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Message("Error updating Banner."))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		banner := &model.Banner{
			ID:          req.BannerID,
			Description: req.Description,
			Duration:    req.ParsedDuration,
			Active:      req.Active,
			Image:       req.Image,
			Link:        req.Link,
		}

		affected, err := bannerUpdater.UpdateBanner(r.Context(), banner)
		if err != nil {
			log.Error("internal error", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Message(fmt.Sprintf("Error updating Banner with id=%d.", req.BannerID)))
			return
		}

		render.Status(r, http.StatusOK)
		if affected == 1 {
			log.Info("banner updated")
			render.JSON(w, r, response.Message("Banner was updated successfully."))
			return
		}

		log.Info("banner not updated", slog.Int64("affected", affected))
		render.JSON(w, r, response.Message(fmt.Sprintf(
			"Cannot update Banner with id=%d. Maybe Banner was not found or req.body is empty!", req.BannerID,
		)))
	}
}
