package cloudinary

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"promobanner/internal/media"
	"promobanner/pkg/lib/sl"

	sdk "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const resourceTypeAuto = "auto"

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	// UploadPrefix overrides the API host, e.g. for a regional endpoint.
	UploadPrefix string
}

type Uploader struct {
	cld    *sdk.Cloudinary
	folder string
	log    *slog.Logger
}

func New(log *slog.Logger, cfg Config) (*Uploader, error) {
	const op = "media.cloudinary.New"

	cld, err := sdk.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cld.Config.URL.Secure = true
	if cfg.UploadPrefix != "" {
		cld.Config.API.UploadPrefix = cfg.UploadPrefix
	}

	log.Info("cloudinary uploader configured",
		slog.String("cloud_name", cfg.CloudName),
		slog.String("folder", cfg.Folder),
	)

	return &Uploader{
		cld:    cld,
		folder: cfg.Folder,
		log:    log.With(slog.String("component", "media/cloudinary")),
	}, nil
}

// Upload sends the stream as a single asset with the resource type detected
// by Cloudinary and returns its https URL. Failures are *media.UploadError.
func (u *Uploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	const op = "media.cloudinary.Upload"

	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		ResourceType: resourceTypeAuto,
		Folder:       u.folder,
	})
	if err != nil {
		u.log.Error("upload request failed", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, &media.UploadError{Message: err.Error()})
	}
	if res.Error.Message != "" {
		u.log.Error("upload rejected", slog.String("reason", res.Error.Message))
		return "", fmt.Errorf("%s: %w", op, &media.UploadError{Message: res.Error.Message})
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("%s: %w", op, &media.UploadError{Message: "empty secure_url in upload response"})
	}

	u.log.Debug("asset uploaded", slog.String("public_id", res.PublicID), slog.String("url", res.SecureURL))

	return res.SecureURL, nil
}
