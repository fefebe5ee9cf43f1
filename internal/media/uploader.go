package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported media format")
	ErrEmptyFile         = errors.New("empty media file")
)

var uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "media_uploads_total",
	Help: "Uploads to the media store by resource type and outcome.",
}, []string{"resource_type", "outcome"})

// Store is the hosted object storage the uploader writes to.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string, meta map[string]string) (string, error)
	Delete(ctx context.Context, key string) error
}

// File is one attachment taken from a multipart request.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Asset is the durable reference returned after an upload.
type Asset struct {
	URL            string
	ObjectKey      string
	Classification Classification
}

type Uploader struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewUploader(store Store, log *zap.Logger) *Uploader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Uploader{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Upload stores f under the folder chosen by c and returns its URL.
func (u *Uploader) Upload(ctx context.Context, c Classification, f File) (Asset, error) {
	if f.Body == nil || f.Size <= 0 {
		return Asset{}, ErrEmptyFile
	}

	ext := fileExtension(f.Name, f.ContentType)
	if !c.Allows("file" + ext) {
		uploadsTotal.WithLabelValues(string(c.ResourceType), "rejected").Inc()
		return Asset{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	now := u.now().UTC()
	key := fmt.Sprintf("%s/%d/%02d/%s%s", c.Folder, now.Year(), now.Month(), uuid.New().String(), ext)

	url, err := u.store.Put(ctx, key, f.Body, f.Size, f.ContentType, map[string]string{
		"original-filename": f.Name,
		"resource-type":     string(c.ResourceType),
		"uploaded-at":       now.Format(time.RFC3339),
	})
	if err != nil {
		uploadsTotal.WithLabelValues(string(c.ResourceType), "failed").Inc()
		return Asset{}, fmt.Errorf("upload %s: %w", f.Name, err)
	}

	uploadsTotal.WithLabelValues(string(c.ResourceType), "stored").Inc()
	u.log.Debug("media uploaded",
		zap.String("key", key),
		zap.String("folder", c.Folder),
		zap.String("resource_type", string(c.ResourceType)),
		zap.Int64("size", f.Size))

	return Asset{URL: url, ObjectKey: key, Classification: c}, nil
}

// Remove deletes a previously uploaded object by its URL or key.
func (u *Uploader) Remove(ctx context.Context, ref string) error {
	return u.store.Delete(ctx, ref)
}

// ResolveContentType trusts the declared part type unless it is missing or
// generic, in which case the content is sniffed and r is rewound.
func ResolveContentType(declared string, r io.ReadSeeker) (string, error) {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
		return mt, nil
	}

	detected, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	mt, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return detected.String(), nil
	}
	return mt, nil
}

func fileExtension(name, contentType string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != "" {
		return ext
	}
	if m := mimetype.Lookup(contentType); m != nil {
		return m.Extension()
	}
	return ""
}
