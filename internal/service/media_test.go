package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reviewapi/internal/storage"
	storeMocks "reviewapi/internal/storage/mocks"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func pngUpload() Upload {
	return Upload{Reader: bytes.NewReader(pngBytes), Filename: "photo.PNG", Size: int64(len(pngBytes))}
}

func TestMediaStore_Save(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		upload     Upload
		max        int64
		setupMocks func(m *storeMocks.MockStorage)
		wantKey    string
		wantErr    error
		wantErrMsg string
	}{
		{
			name:   "png stored under kind and id",
			upload: pngUpload(),
			setupMocks: func(m *storeMocks.MockStorage) {
				m.On("Put", ctx, "products/p-1.png", mock.Anything, storage.PutOptions{
					Size:        int64(len(pngBytes)),
					ContentType: "image/png",
					Metadata:    map[string]string{"original-filename": "photo.PNG"},
				}).Return(storage.ObjectAttrs{Key: "products/p-1.png"}, nil)
			},
			wantKey: "products/p-1.png",
		},
		{
			name:    "nil reader",
			upload:  Upload{},
			wantErr: ErrValidation,
		},
		{
			name:    "declared size too large",
			upload:  Upload{Reader: strings.NewReader("x"), Size: 100},
			max:     10,
			wantErr: ErrTooLarge,
		},
		{
			name:    "actual size too large",
			upload:  Upload{Reader: bytes.NewReader(pngBytes), Size: -1},
			max:     10,
			wantErr: ErrTooLarge,
		},
		{
			name:    "empty body",
			upload:  Upload{Reader: strings.NewReader(""), Size: -1},
			wantErr: ErrValidation,
		},
		{
			name:    "text is rejected",
			upload:  Upload{Reader: strings.NewReader("hello world"), Filename: "a.png", Size: 11},
			wantErr: ErrUnsupportedMedia,
		},
		{
			name:    "svg is rejected",
			upload:  Upload{Reader: strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), Size: -1},
			wantErr: ErrUnsupportedMedia,
		},
		{
			name:   "storage error",
			upload: pngUpload(),
			setupMocks: func(m *storeMocks.MockStorage) {
				m.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectAttrs{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			if tt.setupMocks != nil {
				tt.setupMocks(mStore)
			}
			ms := newMediaStore(mStore, tt.max)

			key, err := ms.save(ctx, KindProducts, "p-1", tt.upload)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantKey, key)
			}
			mStore.AssertExpectations(t)
		})
	}
}

func TestMediaStore_Attach(t *testing.T) {
	ctx := context.Background()
	putOK := func(m *storeMocks.MockStorage) {
		m.On("Put", ctx, "reviews/r-1.png", mock.Anything, mock.Anything).
			Return(storage.ObjectAttrs{Key: "reviews/r-1.png"}, nil)
	}

	t.Run("replacing a different extension deletes the old object", func(t *testing.T) {
		m := new(storeMocks.MockStorage)
		putOK(m)
		m.On("Delete", ctx, "reviews/r-1.jpg").Return(nil)

		var got string
		err := newMediaStore(m, 0).attach(ctx, KindReviews, "r-1", "/uploads/reviews/r-1.jpg", pngUpload(), func(p string) error {
			got = p
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "/uploads/reviews/r-1.png", got)
		m.AssertExpectations(t)
	})

	t.Run("same key keeps the object", func(t *testing.T) {
		m := new(storeMocks.MockStorage)
		putOK(m)

		err := newMediaStore(m, 0).attach(ctx, KindReviews, "r-1", "/uploads/reviews/r-1.png", pngUpload(), func(string) error { return nil })
		require.NoError(t, err)
		m.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("external old image is never deleted", func(t *testing.T) {
		m := new(storeMocks.MockStorage)
		putOK(m)

		err := newMediaStore(m, 0).attach(ctx, KindReviews, "r-1", "https://cdn.example.com/x.jpg", pngUpload(), func(string) error { return nil })
		require.NoError(t, err)
		m.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("failed update deletes the new object", func(t *testing.T) {
		m := new(storeMocks.MockStorage)
		putOK(m)
		m.On("Delete", ctx, "reviews/r-1.png").Return(nil)

		err := newMediaStore(m, 0).attach(ctx, KindReviews, "r-1", "", pngUpload(), func(string) error { return notFound("review") })
		assert.ErrorIs(t, err, ErrNotFound)
		m.AssertExpectations(t)
	})

	t.Run("failed update and failed cleanup", func(t *testing.T) {
		m := new(storeMocks.MockStorage)
		putOK(m)
		m.On("Delete", ctx, "reviews/r-1.png").Return(errors.New("gone"))

		err := newMediaStore(m, 0).attach(ctx, KindReviews, "r-1", "", pngUpload(), func(string) error { return errors.New("db fail") })
		assert.EqualError(t, err, "record update failed: db fail; rollback delete failed: gone")
	})
}

func TestKeyFromPath(t *testing.T) {
	key, ok := KeyFromPath("/uploads/products/a.png")
	assert.True(t, ok)
	assert.Equal(t, "products/a.png", key)

	for _, p := range []string{"", "/uploads/", "https://x/y.png", "products/a.png"} {
		_, ok := KeyFromPath(p)
		assert.False(t, ok, p)
	}
}

func TestFileService_Open(t *testing.T) {
	ctx := context.Background()
	m := new(storeMocks.MockStorage)
	body := io.NopCloser(strings.NewReader("img"))
	m.On("Get", ctx, "products/a.png").Return(body, storage.ObjectAttrs{ContentType: "image/png"}, nil)
	m.On("Get", ctx, "products/missing.png").Return(nil, storage.ObjectAttrs{}, storage.ErrObjectNotFound)

	svc := NewFileService(m)

	rc, info, err := svc.Open(ctx, "products/../products/a.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.ContentType)
	_ = rc.Close()

	_, _, err = svc.Open(ctx, "products/missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.Open(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileService_Presign(t *testing.T) {
	ctx := context.Background()
	m := new(storeMocks.MockStorage)
	m.On("PresignGet", ctx, "reviews/r.png", PresignTTL).Return("https://store/reviews/r.png?sig=1", nil)

	svc := NewFileService(m)

	link, err := svc.Presign(ctx, "/uploads/reviews/r.png")
	require.NoError(t, err)
	assert.Equal(t, "https://store/reviews/r.png?sig=1", link.URL)
	assert.WithinDuration(t, time.Now().Add(PresignTTL), link.ExpiresAt, time.Minute)

	_, err = svc.Presign(ctx, "reviews/r.png")
	assert.ErrorIs(t, err, ErrValidation)
	m.AssertNumberOfCalls(t, "PresignGet", 1)
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: []string{}},
		{in: "happy, sad ,,angry", want: []string{"happy", "sad", "angry"}},
		{in: `["happy"," sad ",""]`, want: []string{"happy", "sad"}},
		{in: "[not json", want: []string{"[not json"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseList(tt.in), tt.in)
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, DefaultPageSize},
		{-3, -1, 1, DefaultPageSize},
		{2, 500, 2, MaxPageSize},
		{4, 25, 4, 25},
	}
	for _, tt := range tests {
		p, s := NormalizePage(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, p)
		assert.Equal(t, tt.wantSize, s)
	}

	assert.Equal(t, Pagination{Page: 1, Size: 10, TotalItems: 21, TotalPages: 3}, newPagination(1, 10, 21))
	assert.Equal(t, 0, newPagination(1, 10, 0).TotalPages)
}

func storageInfo(key string) storage.ObjectAttrs {
	return storage.ObjectAttrs{Key: key}
}
