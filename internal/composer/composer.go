package composer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"socialhub/internal/models"
)

var (
	ErrEmptyDraft         = errors.New("post text is empty")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// PublishError is returned when the server did not accept the post.
type PublishError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *PublishError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("publish post: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("publish post: status=%d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("publish post: status=%d", e.StatusCode)
	}
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

type Kind int

const (
	Image Kind = iota
	Video
	Audio
)

// Attachment is a file picked for one category.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Draft is the unsent post. At most one file per category.
type Draft struct {
	Text         string
	ImageEnabled bool
	VideoEnabled bool
	AudioEnabled bool
	Image        *Attachment
	Video        *Attachment
	Audio        *Attachment
}

func (d *Draft) slot(kind Kind) (*bool, **Attachment) {
	switch kind {
	case Video:
		return &d.VideoEnabled, &d.Video
	case Audio:
		return &d.AudioEnabled, &d.Audio
	default:
		return &d.ImageEnabled, &d.Image
	}
}

type Composer struct {
	app      *AppContext
	notifier Notifier
	log      *zap.Logger

	mu    sync.Mutex
	draft Draft
	busy  atomic.Bool
}

func New(app *AppContext, notifier Notifier, log *zap.Logger) *Composer {
	if log == nil {
		log = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}

	return &Composer{
		app:      app,
		notifier: notifier,
		log:      log,
	}
}

func (c *Composer) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Text = text
}

// Toggle shows or hides a category. Hiding it drops its attachment.
func (c *Composer) Toggle(kind Kind, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	on, file := c.draft.slot(kind)
	*on = enabled
	if !enabled {
		*file = nil
	}
}

// Attach selects the file for kind, replacing any previous one, and enables the category.
func (c *Composer) Attach(kind Kind, a Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	on, file := c.draft.slot(kind)
	*on = true
	*file = &a
}

func (c *Composer) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Composer) Busy() bool {
	return c.busy.Load()
}

func (c *Composer) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.TrimSpace(c.draft.Text) != "" && !c.busy.Load()
}

// Submit publishes the draft. On success the post collection is replaced with
// the server's and the draft is cleared; on failure the draft is kept.
func (c *Composer) Submit(ctx context.Context) ([]models.Post, error) {
	draft := c.Draft()
	if strings.TrimSpace(draft.Text) == "" {
		return nil, ErrEmptyDraft
	}

	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.busy.Store(false)

	posts, err := c.publish(ctx, draft)
	if err != nil {
		c.log.Warn("post not published", zap.Error(err))
		c.notifier.Failure(MessagePublishFailed)
		return nil, err
	}

	c.app.Posts.Replace(posts)

	c.mu.Lock()
	c.draft = Draft{}
	c.mu.Unlock()

	c.notifier.Success(MessagePublished)
	return posts, nil
}

func (c *Composer) publish(ctx context.Context, draft Draft) ([]models.Post, error) {
	body, contentType, err := c.encode(draft)
	if err != nil {
		return nil, &PublishError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.app.BaseURL+"/posts", body)
	if err != nil {
		return nil, &PublishError{Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.app.Token)

	resp, err := c.app.Client.Do(req)
	if err != nil {
		return nil, &PublishError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &apiErr) != nil {
			apiErr.Error = strings.TrimSpace(string(raw))
		}
		return nil, &PublishError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	var posts []models.Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, &PublishError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode posts: %w", err)}
	}

	return posts, nil
}

func (c *Composer) encode(draft Draft) (io.Reader, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("userId", c.app.UserID); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("description", draft.Text); err != nil {
		return nil, "", err
	}

	files := []struct {
		field string
		file  *Attachment
	}{
		{"picture", draft.Image},
		{"video", draft.Video},
		{"audio", draft.Audio},
	}

	for _, f := range files {
		if f.file == nil {
			continue
		}
		if err := writeFile(writer, f.field, f.file); err != nil {
			return nil, "", err
		}
		if err := writer.WriteField(f.field+"Path", f.file.Name); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

func writeFile(writer *multipart.Writer, field string, a *Attachment) error {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, escapeQuotes(a.Name)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create %s part: %w", field, err)
	}
	if _, err := part.Write(a.Data); err != nil {
		return fmt.Errorf("write %s part: %w", field, err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
