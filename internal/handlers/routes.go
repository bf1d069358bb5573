package handlers

import "net/http"

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users          UserStore
	Sessions       SessionManager
	Ingestor       MediaIngestor
	Videos         VideoStore
	Likes          LikeStore
	Authenticate   func(http.Handler) http.Handler
	AuthLimiter    RateLimiter
	MaxUploadBytes int64
}

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	auth := AuthHandler{Users: deps.Users, Sessions: deps.Sessions, Limiter: deps.AuthLimiter}
	videos := VideoHandler{Ingestor: deps.Ingestor, Videos: deps.Videos, MaxUploadBytes: deps.MaxUploadBytes}
	likes := LikeHandler{Likes: deps.Likes}

	authenticated := deps.Authenticate
	if authenticated == nil {
		authenticated = func(next http.Handler) http.Handler { return next }
	}

	mux.HandleFunc("/healthz", health.Handle)
	mux.HandleFunc("/api/v1/auth/signup", auth.SignUp)
	mux.HandleFunc("/api/v1/auth/login", auth.Login)
	mux.HandleFunc("/api/v1/auth/refresh", auth.Refresh)
	mux.Handle("/api/v1/auth/logout", authenticated(http.HandlerFunc(auth.Logout)))
	mux.Handle("/api/v1/videos", authenticated(http.HandlerFunc(videos.Upload)))
	mux.HandleFunc("/api/v1/videos/feed", videos.Feed)
	mux.Handle("/api/v1/videos/like", authenticated(http.HandlerFunc(likes.Handle)))
}
