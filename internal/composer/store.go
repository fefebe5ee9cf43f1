package composer

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"socialhub/internal/models"
)

// PostStore holds the post collection currently shown to the user.
type PostStore struct {
	mu    sync.RWMutex
	posts []models.Post
}

func NewPostStore(posts []models.Post) *PostStore {
	return &PostStore{posts: posts}
}

func (s *PostStore) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Replace swaps the whole collection.
func (s *PostStore) Replace(posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
}

// AppContext is the session the composer acts in.
type AppContext struct {
	BaseURL string
	UserID  string
	Token   string
	Client  *http.Client
	Posts   *PostStore
}

func NewAppContext(baseURL, userID, token string, timeout time.Duration) *AppContext {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &AppContext{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		UserID:  userID,
		Token:   token,
		Client:  &http.Client{Timeout: timeout},
		Posts:   NewPostStore(nil),
	}
}
