package model

import (
	"time"
)

// Banner is a row of the banners table. ID is zero until the row is stored.
type Banner struct {
	ID          int64      `db:"id"`
	Description string     `db:"description"`
	Duration    *time.Time `db:"duration"`
	Active      bool       `db:"active"`
	Image       string     `db:"image"`
	Link        string     `db:"link"`
}

// Filter narrows a banner listing. Nil fields impose no constraint.
type Filter struct {
	Description *string
	Active      *bool
}
