package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"socialhub/internal/media"
	"socialhub/internal/service"
)

// multipartMemory is how much of a form is kept in memory before spilling to disk.
const multipartMemory = 10 << 20

type uploadForm struct {
	r       *http.Request
	closers []io.Closer
}

// parseMultipart enforces the request body ceiling and parses the form.
// The returned form must be closed.
func (h *Handlers) parseMultipart(w http.ResponseWriter, r *http.Request) (*uploadForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: request body exceeds %d bytes", service.ErrValidation, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: malformed multipart form: %w", service.ErrValidation, err)
	}

	return &uploadForm{r: r}, nil
}

func (f *uploadForm) Value(key string) string {
	return strings.TrimSpace(f.r.FormValue(key))
}

// Raw returns the field exactly as sent, for free-form text.
func (f *uploadForm) Raw(key string) string {
	return f.r.FormValue(key)
}

// File returns the single file under field, or nil when the field is absent.
func (f *uploadForm) File(field string) (*media.File, error) {
	headers := f.r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	if len(headers) > 1 {
		return nil, fmt.Errorf("%w: only one %s file is accepted", service.ErrValidation, field)
	}

	fh := headers[0]
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", service.ErrValidation, field, err)
	}
	f.closers = append(f.closers, file)

	contentType, err := media.ResolveContentType(fh.Header.Get("Content-Type"), file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrValidation, err)
	}

	return &media.File{
		Name:        fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        file,
	}, nil
}

func (f *uploadForm) Close() {
	for _, c := range f.closers {
		c.Close()
	}
	f.r.MultipartForm.RemoveAll()
}
