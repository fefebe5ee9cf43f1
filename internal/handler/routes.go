package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"socialhub/internal/middleware"
	"socialhub/internal/models"
)

// NewRouter registers every route. Everything outside /auth, /health and
// /metrics requires a bearer token; /admin also requires the admin role.
// /auth is rate limited per client IP when AuthLimiter is set.
// X-Forwarded-For is honoured only with Cfg.TrustProxy.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.MetricsMiddleware)

	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	auth := router.PathPrefix("/auth").Subrouter()
	if h.AuthLimiter != nil {
		auth.Use(mux.MiddlewareFunc(middleware.RateLimitMiddleware(h.AuthLimiter, h.Cfg.TrustProxy, h.Log)))
	}
	auth.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.RefreshToken).Methods(http.MethodPost)

	requireAuth := mux.MiddlewareFunc(middleware.AuthMiddleware(h.AuthService, h.Log))

	users := router.PathPrefix("/users").Subrouter()
	users.Use(requireAuth)
	users.HandleFunc("/{id}", h.GetUser).Methods(http.MethodGet)
	users.HandleFunc("/{id}/friends", h.GetUserFriends).Methods(http.MethodGet)
	users.HandleFunc("/{id}/posts", h.GetUserPosts).Methods(http.MethodGet)
	users.HandleFunc("/{id}/{friendId}", h.AddRemoveFriend).Methods(http.MethodPatch)

	posts := router.PathPrefix("/posts").Subrouter()
	posts.Use(requireAuth)
	posts.HandleFunc("", h.GetFeedPosts).Methods(http.MethodGet)
	posts.HandleFunc("", h.CreatePost).Methods(http.MethodPost)
	posts.HandleFunc("/{id}/like", h.LikePost).Methods(http.MethodPatch)
	posts.HandleFunc("/{id}", h.DeletePost).Methods(http.MethodDelete)

	messages := router.PathPrefix("/messages").Subrouter()
	messages.Use(requireAuth)
	messages.HandleFunc("", h.SendMessage).Methods(http.MethodPost)
	messages.HandleFunc("/{userId}", h.GetConversation).Methods(http.MethodGet)

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(requireAuth, mux.MiddlewareFunc(middleware.RoleMiddleware(models.RoleAdmin)))
	admin.HandleFunc("/users", h.AdminListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", h.AdminDeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/posts/{id}", h.AdminDeletePost).Methods(http.MethodDelete)
	admin.HandleFunc("/stats", h.AdminStats).Methods(http.MethodGet)

	return router
}
