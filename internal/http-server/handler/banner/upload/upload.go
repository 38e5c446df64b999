package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"promobanner/internal/media"
	"promobanner/pkg/lib/api/response"
	"promobanner/pkg/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const (
	formField       = "file"
	msgUploadFailed = "Upload to Cloudinary failed."
)

type FileUploader interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}

type Response struct {
	response.Response
	URL string `json:"url"`
}

// New relays the multipart "file" part to the uploader. The part is read
// into memory before the upload starts and the call is not retried.
func New(log *slog.Logger, fileUploader FileUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.Banner.Upload.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		file, header, err := r.FormFile(formField)
		if err != nil {
			log.Info("no file in request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Message(response.MsgNoFile))
			return
		}
		defer file.Close()

		log.Info("uploading file",
			slog.String("filename", header.Filename),
			slog.Int64("size", header.Size),
		)

		buf, err := io.ReadAll(file)
		if err != nil {
			log.Error("failed to read file", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(msgUploadFailed, &media.UploadError{Message: err.Error()}))
			return
		}

		url, err := fileUploader.Upload(r.Context(), bytes.NewReader(buf))
		if err != nil {
			log.Error("upload failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(msgUploadFailed, uploadErrorPayload(err)))
			return
		}

		log.Info("file uploaded", slog.String("url", url))
		render.Status(r, http.StatusOK)
		render.JSON(w, r, Response{
			Response: response.Message("File uploaded successfully!"),
			URL:      url,
		})
	}
}

func uploadErrorPayload(err error) *media.UploadError {
	var uploadErr *media.UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr
	}
	return &media.UploadError{Message: err.Error()}
}
