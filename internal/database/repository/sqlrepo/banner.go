package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	storage "promobanner/internal/database"
	"promobanner/internal/database/driver"
	"promobanner/internal/database/model"

	"github.com/jmoiron/sqlx"
)

// Statements use '?' placeholders and are rebound for the active driver.
const (
	selectBanners = "SELECT id, description, duration, active, image, link FROM banners"
	insertBanner  = "INSERT INTO banners (description, duration, active, image, link) VALUES (?, ?, ?, ?, ?)"
	updateBanner  = "UPDATE banners SET description = ?, duration = ?, active = ?, image = ?, link = ? WHERE id = ?"
	deleteBanner  = "DELETE FROM banners WHERE id = ?"
	deleteBanners = "DELETE FROM banners"
)

type BannerRepository struct {
	db *sqlx.DB
}

func NewBannerRepository(db *sqlx.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

// SaveBanner inserts the banner and returns the row as stored.
func (b *BannerRepository) SaveBanner(ctx context.Context, banner *model.Banner) (*model.Banner, error) {
	const op = "repository.sqlrepo.SaveBanner"

	id, err := b.insert(ctx, banner)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := b.BannerByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if saved == nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrBannerNotPersisted)
	}

	return saved, nil
}

func (b *BannerRepository) insert(ctx context.Context, banner *model.Banner) (int64, error) {
	args := []any{banner.Description, banner.Duration, banner.Active, banner.Image, banner.Link}

	if b.db.DriverName() == driver.Postgres {
		var id int64
		err := b.db.QueryRowxContext(ctx, b.db.Rebind(insertBanner+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := b.db.ExecContext(ctx, b.db.Rebind(insertBanner), args...)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (b *BannerRepository) Banners(ctx context.Context, filter model.Filter) ([]model.Banner, error) {
	const op = "repository.sqlrepo.Banners"

	query := selectBanners
	var (
		conditions []string
		args       []any
	)

	if filter.Active != nil {
		conditions = append(conditions, "active = ?")
		args = append(args, *filter.Active)
	}
	if filter.Description != nil && *filter.Description != "" {
		conditions = append(conditions, "LOWER(description) LIKE ?")
		args = append(args, "%"+strings.ToLower(*filter.Description)+"%")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	banners := make([]model.Banner, 0)
	if err := b.db.SelectContext(ctx, &banners, b.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return banners, nil
}

// BannerByID returns nil without an error when no row matches.
func (b *BannerRepository) BannerByID(ctx context.Context, bannerID int64) (*model.Banner, error) {
	const op = "repository.sqlrepo.BannerByID"

	var banner model.Banner
	err := b.db.GetContext(ctx, &banner, b.db.Rebind(selectBanners+" WHERE id = ?"), bannerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &banner, nil
}

// UpdateBanner replaces every column of the row with banner.ID and reports how
// many rows matched.
func (b *BannerRepository) UpdateBanner(ctx context.Context, banner *model.Banner) (int64, error) {
	const op = "repository.sqlrepo.UpdateBanner"

	if banner.ID == 0 {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrBannerIDRequired)
	}

	stmt, err := b.db.PreparexContext(ctx, b.db.Rebind(updateBanner))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, banner.Description, banner.Duration, banner.Active, banner.Image, banner.Link, banner.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return rowsAffected, nil
}

func (b *BannerRepository) DeleteBanner(ctx context.Context, bannerID int64) (int64, error) {
	const op = "repository.sqlrepo.DeleteBanner"

	affected, err := b.exec(ctx, deleteBanner, bannerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return affected, nil
}

func (b *BannerRepository) DeleteAllBanners(ctx context.Context) (int64, error) {
	const op = "repository.sqlrepo.DeleteAllBanners"

	affected, err := b.exec(ctx, deleteBanners)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return affected, nil
}

func (b *BannerRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := b.db.ExecContext(ctx, b.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
