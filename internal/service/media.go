package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"reviewapi/internal/storage"
)

// Object key prefixes for stored images.
const (
	KindProducts        = "products"
	KindReviews         = "reviews"
	KindProfilePictures = "profile-pictures"
)

// UploadsPrefix is the public path under which stored objects are served.
const UploadsPrefix = "/uploads/"

// DefaultMaxImageBytes applies when no limit is configured.
const DefaultMaxImageBytes = 5 << 20

// Upload is an image received from a client. Size is the declared size, or -1 if unknown.
type Upload struct {
	Reader   io.Reader
	Filename string
	Size     int64
}

// PublicPath returns the path a stored key is served under.
func PublicPath(key string) string {
	return UploadsPrefix + key
}

// KeyFromPath extracts the object key from a public path. It returns false for
// external URLs and empty values, which are never deleted.
func KeyFromPath(p string) (string, bool) {
	key, ok := strings.CutPrefix(p, UploadsPrefix)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// mediaStore ties image objects to the records that reference them.
type mediaStore struct {
	store    storage.Storage
	maxBytes int64
}

func newMediaStore(store storage.Storage, maxBytes int64) *mediaStore {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &mediaStore{store: store, maxBytes: maxBytes}
}

// save validates the upload and stores it under <kind>/<id><ext>.
func (m *mediaStore) save(ctx context.Context, kind, id string, up Upload) (string, error) {
	if up.Reader == nil {
		return "", invalid("image file is required")
	}
	if up.Size > m.maxBytes {
		return "", &kindError{kind: ErrTooLarge, msg: fmt.Sprintf("image exceeds %d bytes", m.maxBytes)}
	}
	// The body is buffered so that S3 signing can seek it.
	data, err := io.ReadAll(io.LimitReader(up.Reader, m.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > m.maxBytes {
		return "", &kindError{kind: ErrTooLarge, msg: fmt.Sprintf("image exceeds %d bytes", m.maxBytes)}
	}
	if len(data) == 0 {
		return "", invalid("image file is empty")
	}

	mt := mimetype.Detect(data)
	contentType := mt.String()
	// SVG is refused: it is served from our origin and may carry script.
	if !strings.HasPrefix(contentType, "image/") || mt.Is("image/svg+xml") {
		return "", &kindError{kind: ErrUnsupportedMedia, msg: "only image uploads are allowed"}
	}
	ext := mt.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(up.Filename))
	}

	key := path.Join(kind, id+ext)
	info, err := m.store.Put(ctx, key, bytes.NewReader(data), storage.PutOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filepath.Base(up.Filename),
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}
	if info.Key != "" {
		key = info.Key
	}
	return key, nil
}

// attach stores the upload, lets update persist the new public path and cleans up:
// a failed update deletes the new object, a successful one deletes the old object
// when its key changed.
func (m *mediaStore) attach(ctx context.Context, kind, id, oldPath string, up Upload, update func(path string) error) error {
	key, err := m.save(ctx, kind, id, up)
	if err != nil {
		return err
	}
	oldKey, hadOld := KeyFromPath(oldPath)

	if err := update(PublicPath(key)); err != nil {
		if hadOld && oldKey == key {
			return err
		}
		if delErr := m.store.Delete(ctx, key); delErr != nil {
			return fmt.Errorf("record update failed: %v; rollback delete failed: %v", err, delErr)
		}
		return err
	}

	if hadOld && oldKey != key {
		// A stale object only costs space; the record already points at the new one.
		_ = m.store.Delete(ctx, oldKey)
	}
	return nil
}

// remove deletes the object behind a public path, if any.
func (m *mediaStore) remove(ctx context.Context, p string) error {
	key, ok := KeyFromPath(p)
	if !ok {
		return nil
	}
	if err := m.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return nil
}

// FileService serves stored uploads back to clients.
type FileService interface {
	// Open returns the object stored under key; missing keys yield ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectAttrs, error)
	// Presign returns a time-limited direct download link for a public upload path.
	Presign(ctx context.Context, publicPath string) (*PresignedLink, error)
}

// PresignTTL is how long a presigned download link stays valid.
const PresignTTL = 15 * time.Minute

// PresignedLink is a direct object store URL for an upload.
type PresignedLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type fileService struct {
	store storage.Storage
}

// NewFileService constructs a FileService.
func NewFileService(store storage.Storage) FileService {
	return &fileService{store: store}
}

func (s *fileService) Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectAttrs, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" {
		return nil, storage.ObjectAttrs{}, notFound("file")
	}
	rc, info, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectAttrs{}, notFound("file")
		}
		return nil, storage.ObjectAttrs{}, err
	}
	return rc, info, nil
}

func (s *fileService) Presign(ctx context.Context, publicPath string) (*PresignedLink, error) {
	key, ok := KeyFromPath(publicPath)
	if !ok {
		return nil, invalid("path must reference an uploaded file")
	}
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	expires := time.Now().Add(PresignTTL)
	link, err := s.store.PresignGet(ctx, key, PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", key, err)
	}
	return &PresignedLink{URL: link, ExpiresAt: expires}, nil
}
