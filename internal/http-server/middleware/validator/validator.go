package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	httpModel "promobanner/internal/http-server/model"
	"promobanner/pkg/lib/api/response"
	"promobanner/pkg/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	playground "github.com/go-playground/validator/v10"
)

type Key string

const (
	BannerIDKey     = Key("banner id key")
	CreateBannerKey = Key("create banner key")
	UpdateBannerKey = Key("update banner key")
)

// CreateBannerRequest fields are declared in the order their presence is
// checked.
type CreateBannerRequest struct {
	Description string                  `json:"description" validate:"required"`
	Image       string                  `json:"image" validate:"required"`
	Link        string                  `json:"link" validate:"required"`
	Duration    httpModel.DurationValue `json:"duration" validate:"required"`
	// Active is accepted in any shape and ignored: new banners always start
	// active.
	Active json.RawMessage `json:"active,omitempty"`

	ParsedDuration time.Time `json:"-"`
}

// UpdateBannerRequest is passed through to storage without presence checks.
type UpdateBannerRequest struct {
	BannerID    int64                   `json:"-"`
	Description string                  `json:"description"`
	Duration    httpModel.DurationValue `json:"duration"`
	Active      bool                    `json:"active"`
	Image       string                  `json:"image"`
	Link        string                  `json:"link"`

	ParsedDuration *time.Time `json:"-"`
}

var validate = playground.New()

// BannerID parses the {id} URL parameter and stores it under BannerIDKey.
func BannerID(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		const op = "http-server.middleware.validator.BannerID"

		log := log.With(
			slog.String("op", op),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				badRequest(w, r, log, response.MsgInvalidID, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withValue(r, BannerIDKey, id)))
		}

		return http.HandlerFunc(fn)
	}
}

// CreateBanner decodes the body and rejects it with the name of the first
// missing field, checked as description, image, link, duration.
func CreateBanner(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		const op = "http-server.middleware.validator.CreateBanner"

		log := log.With(
			slog.String("op", op),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			var req CreateBannerRequest
			if err := decode(r, &req); err != nil {
				badRequest(w, r, log, response.MsgInvalidBody, err)
				return
			}

			if err := validate.Struct(req); err != nil {
				var validationErrs playground.ValidationErrors
				if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
					log.Error("failed to validate request", sl.Err(err))
					render.Status(r, http.StatusInternalServerError)
					render.JSON(w, r, response.Message("Some error occurred while creating the banner."))
					return
				}
				badRequest(w, r, log, emptyFieldMessage(validationErrs[0]), err)
				return
			}

			duration, err := httpModel.ParseDuration(string(req.Duration))
			if err != nil {
				badRequest(w, r, log, "Duration is not a valid date!", err)
				return
			}
			req.ParsedDuration = duration

			next.ServeHTTP(w, r.WithContext(withValue(r, CreateBannerKey, req)))
		}

		return http.HandlerFunc(fn)
	}
}

// UpdateBanner decodes an optional body for the banner named by BannerIDKey,
// so it must run after BannerID. No field is required, but a duration that
// does not parse as a date is rejected with 400 before storage is reached.
func UpdateBanner(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		const op = "http-server.middleware.validator.UpdateBanner"

		log := log.With(
			slog.String("op", op),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			id, ok := r.Context().Value(BannerIDKey).(int64)
			if !ok {
				log.Error("banner id missing from context")
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Message("Error updating Banner."))
				return
			}

			req := UpdateBannerRequest{BannerID: id}
			if err := decode(r, &req); err != nil {
				badRequest(w, r, log, response.MsgInvalidBody, err)
				return
			}

			if req.Duration != "" {
				duration, err := httpModel.ParseDuration(string(req.Duration))
				if err != nil {
					badRequest(w, r, log, "Duration is not a valid date!", err)
					return
				}
				req.ParsedDuration = &duration
			}

			next.ServeHTTP(w, r.WithContext(withValue(r, UpdateBannerKey, req)))
		}

		return http.HandlerFunc(fn)
	}
}

func withValue(r *http.Request, key Key, v any) context.Context {
	return context.WithValue(r.Context(), key, v)
}

// decode treats an empty body as an empty JSON object.
func decode(r *http.Request, v any) error {
	err := render.DecodeJSON(r.Body, v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func emptyFieldMessage(fe playground.FieldError) string {
	return fmt.Sprintf("%s cannot be empty!", fe.Field())
}

func badRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger, msg string, err error) {
	log.Info("bad request",
		slog.String("reason", msg),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		sl.Err(err),
	)
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Message(msg))
}
