package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	storage "promobanner/internal/database"
	"promobanner/internal/database/model"
	httpBanner "promobanner/internal/http-server/model"
	"promobanner/internal/media"
	"promobanner/pkg/lib/logger/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Banner
	err    error
}

func newMemRepository() *memRepository {
	return &memRepository{rows: make(map[int64]model.Banner)}
}

func (m *memRepository) SaveBanner(_ context.Context, banner *model.Banner) (*model.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	saved := *banner
	saved.ID = m.nextID
	m.rows[saved.ID] = saved
	return &saved, nil
}

func (m *memRepository) Banners(_ context.Context, filter model.Filter) ([]model.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	banners := make([]model.Banner, 0, len(m.rows))
	for _, b := range m.rows {
		if filter.Active != nil && b.Active != *filter.Active {
			continue
		}
		if filter.Description != nil && !strings.Contains(strings.ToLower(b.Description), strings.ToLower(*filter.Description)) {
			continue
		}
		banners = append(banners, b)
	}
	sort.Slice(banners, func(i, j int) bool { return banners[i].ID < banners[j].ID })
	return banners, nil
}

func (m *memRepository) BannerByID(_ context.Context, bannerID int64) (*model.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.rows[bannerID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memRepository) UpdateBanner(_ context.Context, banner *model.Banner) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if banner.ID == 0 {
		return 0, storage.ErrBannerIDRequired
	}
	if _, ok := m.rows[banner.ID]; !ok {
		return 0, nil
	}
	m.rows[banner.ID] = *banner
	return 1, nil
}

func (m *memRepository) DeleteBanner(_ context.Context, bannerID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.rows[bannerID]; !ok {
		return 0, nil
	}
	delete(m.rows, bannerID)
	return 1, nil
}

func (m *memRepository) DeleteAllBanners(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	n := int64(len(m.rows))
	m.rows = make(map[int64]model.Banner)
	return n, nil
}

func (m *memRepository) seed(banners ...model.Banner) {
	for i := range banners {
		_, _ = m.SaveBanner(context.Background(), &banners[i])
	}
}

type fakeUploader struct {
	url  string
	err  error
	got  []byte
	hits int
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader) (string, error) {
	f.hits++
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.got = b
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type apiMessage struct {
	Message string         `json:"message"`
	URL     string         `json:"url"`
	Error   map[string]any `json:"error"`
}

func newServer(repo *memRepository, uploader *fakeUploader) http.Handler {
	return New(slogdiscard.NewDiscardLogger(), repo, uploader)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestCreateBanner(t *testing.T) {
	repo := newMemRepository()
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodPost, "/api/banner",
		`{"description":"Sale","image":"http://x/i.png","link":"http://x","duration":"2025-01-01","active":false}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	got := decode[httpBanner.Banner](t, rr)
	assert.NotZero(t, got.ID)
	assert.True(t, got.Active)
	assert.Equal(t, "Sale", got.Description)
	assert.Equal(t, "http://x/i.png", got.Image)
	assert.Equal(t, "http://x", got.Link)
	require.NotNil(t, got.Duration)
	assert.Equal(t, "2025-01-01", got.Duration.Format("2006-01-02"))

	raw := decode[map[string]any](t, rr)
	assert.IsType(t, float64(0), raw["id"])

	stored, err := repo.BannerByID(context.Background(), got.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Active)
}

func TestCreateBannerIgnoresClientActive(t *testing.T) {
	for _, active := range []string{`false`, `"false"`, `0`, `null`, `{"x":1}`} {
		t.Run(active, func(t *testing.T) {
			repo := newMemRepository()
			h := newServer(repo, &fakeUploader{})

			rr := do(t, h, http.MethodPost, "/api/banner",
				`{"description":"Sale","image":"i","link":"l","duration":"2025-01-01","active":`+active+`}`)
			require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
			assert.True(t, decode[httpBanner.Banner](t, rr).Active)
			require.Len(t, repo.rows, 1)
			assert.True(t, repo.rows[1].Active)
		})
	}
}

func TestCreateBannerDurationFormats(t *testing.T) {
	tests := []struct {
		duration string
		want     time.Time
	}{
		{`1735689600000`, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{`"2025-01-01 10:00:00"`, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.duration, func(t *testing.T) {
			repo := newMemRepository()
			h := newServer(repo, &fakeUploader{})

			rr := do(t, h, http.MethodPost, "/api/banner",
				`{"description":"Sale","image":"i","link":"l","duration":`+tt.duration+`}`)
			require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

			got := decode[httpBanner.Banner](t, rr)
			require.NotNil(t, got.Duration)
			assert.True(t, tt.want.Equal(*got.Duration), "got %v, want %v", got.Duration, tt.want)
		})
	}
}

func TestCreateBannerMissingField(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", ``, "Description cannot be empty!"},
		{"everything missing", `{}`, "Description cannot be empty!"},
		{"description", `{"image":"i","link":"l","duration":"2025-01-01"}`, "Description cannot be empty!"},
		{"image", `{"description":"d","link":"l","duration":"2025-01-01"}`, "Image cannot be empty!"},
		{"image before link", `{"description":"d"}`, "Image cannot be empty!"},
		{"link", `{"description":"d","image":"i","duration":"2025-01-01"}`, "Link cannot be empty!"},
		{"duration", `{"description":"d","image":"i","link":"l"}`, "Duration cannot be empty!"},
		{"null duration", `{"description":"d","image":"i","link":"l","duration":null}`, "Duration cannot be empty!"},
		{"empty string counts as missing", `{"description":"","image":"i","link":"l","duration":"2025-01-01"}`, "Description cannot be empty!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepository()
			h := newServer(repo, &fakeUploader{})

			rr := do(t, h, http.MethodPost, "/api/banner", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.want, decode[apiMessage](t, rr).Message)
			assert.Empty(t, repo.rows)
		})
	}
}

func TestCreateBannerRejectsBadInput(t *testing.T) {
	repo := newMemRepository()
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodPost, "/api/banner", `{"description":"d","image":"i","link":"l","duration":"someday"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Duration is not a valid date!", decode[apiMessage](t, rr).Message)

	rr = do(t, h, http.MethodPost, "/api/banner", `{"description":`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid request body!", decode[apiMessage](t, rr).Message)

	assert.Empty(t, repo.rows)
}

func TestCreateBannerStorageFailure(t *testing.T) {
	repo := newMemRepository()
	repo.err = storage.ErrBannerNotPersisted
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodPost, "/api/banner", `{"description":"d","image":"i","link":"l","duration":"2025-01-01"}`)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Some error occurred while creating the banner.", decode[apiMessage](t, rr).Message)
}

func TestListBanners(t *testing.T) {
	repo := newMemRepository()
	repo.seed(
		model.Banner{Description: "on", Active: true, Image: "i", Link: "l"},
		model.Banner{Description: "off", Active: false, Image: "i", Link: "l"},
	)
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodGet, "/api/banner", "")
	require.Equal(t, http.StatusOK, rr.Code)
	active := decode[[]httpBanner.Banner](t, rr)
	require.Len(t, active, 1)
	assert.Equal(t, "on", active[0].Description)

	rr = do(t, h, http.MethodGet, "/api/banner/all", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]httpBanner.Banner](t, rr), 2)
}

func TestListBannersEmpty(t *testing.T) {
	h := newServer(newMemRepository(), &fakeUploader{})

	rr := do(t, h, http.MethodGet, "/api/banner/all", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListBannersFailure(t *testing.T) {
	repo := newMemRepository()
	repo.err = errors.New("db down")
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodGet, "/api/banner", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Some error occurred while retrieving active banners.", decode[apiMessage](t, rr).Message)

	rr = do(t, h, http.MethodGet, "/api/banner/all", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Some error occurred while retrieving banners.", decode[apiMessage](t, rr).Message)
}

func TestGetBanner(t *testing.T) {
	repo := newMemRepository()
	repo.seed(model.Banner{Description: "d", Active: true, Image: "i", Link: "l"})
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodGet, "/api/banner/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[httpBanner.Banner](t, rr)
	assert.Equal(t, int64(1), got.ID)
	assert.Nil(t, got.Duration)

	rr = do(t, h, http.MethodGet, "/api/banner/42", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Cannot find Banner with id=42.", decode[apiMessage](t, rr).Message)

	rr = do(t, h, http.MethodGet, "/api/banner/abc", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid id!", decode[apiMessage](t, rr).Message)
}

func TestGetBannerFailure(t *testing.T) {
	repo := newMemRepository()
	repo.err = errors.New("db down")
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodGet, "/api/banner/7", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error retrieving Banner with id=7.", decode[apiMessage](t, rr).Message)
}

func TestUpdateBanner(t *testing.T) {
	repo := newMemRepository()
	repo.seed(model.Banner{Description: "old", Active: true, Image: "i", Link: "l"})
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodPut, "/api/banner/1",
		`{"description":"new","image":"i2","link":"l2","active":false,"duration":"2030-06-01T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Banner was updated successfully.", decode[apiMessage](t, rr).Message)

	stored := repo.rows[1]
	assert.Equal(t, "new", stored.Description)
	assert.False(t, stored.Active)
	require.NotNil(t, stored.Duration)
	assert.Equal(t, 2030, stored.Duration.Year())
}

func TestUpdateBannerNotFound(t *testing.T) {
	repo := newMemRepository()
	repo.seed(model.Banner{Description: "keep", Active: true, Image: "i", Link: "l"})
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodPut, "/api/banner/99", `{"description":"x"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t,
		"Cannot update Banner with id=99. Maybe Banner was not found or req.body is empty!",
		decode[apiMessage](t, rr).Message,
	)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, "keep", repo.rows[1].Description)
}

func TestUpdateBannerAcceptsEmptyBody(t *testing.T) {
	repo := newMemRepository()
	repo.seed(model.Banner{Description: "d", Active: true, Image: "i", Link: "l"})
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodPut, "/api/banner/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Banner was updated successfully.", decode[apiMessage](t, rr).Message)
	assert.Equal(t, "", repo.rows[1].Description)
}

func TestUpdateBannerRejectsBadDuration(t *testing.T) {
	repo := newMemRepository()
	repo.seed(model.Banner{Description: "keep", Active: true, Image: "i", Link: "l"})
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodPut, "/api/banner/1", `{"description":"x","duration":"soon"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Duration is not a valid date!", decode[apiMessage](t, rr).Message)
	assert.Equal(t, "keep", repo.rows[1].Description)
}

func TestUpdateBannerWithoutID(t *testing.T) {
	repo := newMemRepository()
	repo.seed(model.Banner{Description: "keep", Active: true, Image: "i", Link: "l"})
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodPut, "/api/banner/0", `{"description":"x"}`)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error updating Banner with id=0.", decode[apiMessage](t, rr).Message)
	assert.Equal(t, "keep", repo.rows[1].Description)
}

func TestUpdateBannerFailure(t *testing.T) {
	repo := newMemRepository()
	repo.err = errors.New("db down")
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodPut, "/api/banner/3", `{"description":"x"}`)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error updating Banner with id=3.", decode[apiMessage](t, rr).Message)
}

func TestDeleteBanner(t *testing.T) {
	repo := newMemRepository()
	repo.seed(model.Banner{Description: "d", Active: true, Image: "i", Link: "l"})
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodDelete, "/api/banner/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Banner was deleted successfully!", decode[apiMessage](t, rr).Message)
	assert.Empty(t, repo.rows)

	rr = do(t, h, http.MethodDelete, "/api/banner/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Cannot delete Banner with id=1. Maybe Banner was not found!", decode[apiMessage](t, rr).Message)

	repo.err = errors.New("db down")
	rr = do(t, h, http.MethodDelete, "/api/banner/1", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Could not delete Banner with id=1.", decode[apiMessage](t, rr).Message)
}

func TestDeleteAllBanners(t *testing.T) {
	repo := newMemRepository()
	repo.seed(
		model.Banner{Description: "a", Active: true, Image: "i", Link: "l"},
		model.Banner{Description: "b", Active: false, Image: "i", Link: "l"},
		model.Banner{Description: "c", Active: true, Image: "i", Link: "l"},
	)
	h := newServer(repo, &fakeUploader{})

	rr := do(t, h, http.MethodDelete, "/api/banner", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "3 Banners were deleted successfully!", decode[apiMessage](t, rr).Message)

	rr = do(t, h, http.MethodGet, "/api/banner/all", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	repo.err = errors.New("db down")
	rr = do(t, h, http.MethodDelete, "/api/banner", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Some error occurred while removing all banners.", decode[apiMessage](t, rr).Message)
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/banner/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadNoFile(t *testing.T) {
	uploader := &fakeUploader{url: "https://cdn/x.png"}
	h := newServer(newMemRepository(), uploader)

	rr := do(t, h, http.MethodPost, "/api/banner/upload", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"No file uploaded."}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, multipartRequest(t, "other", "x.png", []byte("data")))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "No file uploaded.", decode[apiMessage](t, rr).Message)

	assert.Zero(t, uploader.hits)
}

func TestUploadFile(t *testing.T) {
	uploader := &fakeUploader{url: "https://res.cloudinary.com/demo/image/upload/v1/x.png"}
	h := newServer(newMemRepository(), uploader)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, multipartRequest(t, "file", "x.png", []byte("png bytes")))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got := decode[apiMessage](t, rr)
	assert.Equal(t, "File uploaded successfully!", got.Message)
	assert.Equal(t, uploader.url, got.URL)
	assert.Equal(t, []byte("png bytes"), uploader.got)
	assert.Equal(t, 1, uploader.hits)
}

func TestUploadFailure(t *testing.T) {
	uploader := &fakeUploader{err: &media.UploadError{Message: "Invalid image file"}}
	h := newServer(newMemRepository(), uploader)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, multipartRequest(t, "file", "x.txt", []byte("text")))
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	got := decode[apiMessage](t, rr)
	assert.Equal(t, "Upload to Cloudinary failed.", got.Message)
	assert.Equal(t, "Invalid image file", got.Error["message"])
	assert.Equal(t, 1, uploader.hits)
}
