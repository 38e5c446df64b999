package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"promobanner/internal/database/model"
)

var ErrInvalidDuration = errors.New("invalid duration")

// durationLayouts are tried in order when parsing a client supplied expiry.
var durationLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DurationValue is a client supplied expiry. Strings are kept as sent, JSON
// numbers are epoch milliseconds, and null, false or 0 mean "not given".
type DurationValue string

func (d *DurationValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")), bytes.Equal(b, []byte("false")):
		*d = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = DurationValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("duration must be a string or a number: %w", err)
	}
	millis, err := n.Float64()
	if err != nil {
		return err
	}
	if millis == 0 {
		*d = ""
		return nil
	}

	*d = DurationValue(time.UnixMilli(int64(millis)).UTC().Format(time.RFC3339Nano))
	return nil
}

type Banner struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Duration    *time.Time `json:"duration,omitempty"`
	Active      bool       `json:"active"`
	Image       string     `json:"image"`
	Link        string     `json:"link"`
}

func BannerDBtoBannerHTTP(banner model.Banner) Banner {
	return Banner{
		ID:          banner.ID,
		Description: banner.Description,
		Duration:    banner.Duration,
		Active:      banner.Active,
		Image:       banner.Image,
		Link:        banner.Link,
	}
}

func BannersDBtoBannersHTTP(banners []model.Banner) []Banner {
	httpBanners := make([]Banner, 0, len(banners))
	for _, banner := range banners {
		httpBanners = append(httpBanners, BannerDBtoBannerHTTP(banner))
	}
	return httpBanners
}

// ParseDuration accepts an RFC 3339 timestamp, a date with a space or "T"
// separated time, or a bare date. Values without a zone are taken as UTC.
func ParseDuration(s string) (time.Time, error) {
	for _, layout := range durationLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDuration
}
