package repository

import (
	"context"

	"promobanner/internal/database/model"
)

type BannerRepository interface {
	SaveBanner(ctx context.Context, banner *model.Banner) (*model.Banner, error)
	Banners(ctx context.Context, filter model.Filter) ([]model.Banner, error)
	BannerByID(ctx context.Context, bannerID int64) (*model.Banner, error)
	UpdateBanner(ctx context.Context, banner *model.Banner) (int64, error)
	DeleteBanner(ctx context.Context, bannerID int64) (int64, error)
	DeleteAllBanners(ctx context.Context) (int64, error)
}
