package storage

import "errors"

var (
	ErrBannerIDRequired   = errors.New("banner id is required")
	ErrBannerNotPersisted = errors.New("failed to retrieve the newly inserted banner")
)
