package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/pkg/httpx"
	"github.com/aussiebroadwan/forum/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService    *service.AuthService
	SessionService *service.SessionService
	ForumService   *service.ForumService
	ThemeService   *ThemeService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerForum()
	r.registerTheme()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	signup := &SignupHandler{Auth: r.AuthService, Sessions: r.SessionService}
	login := &LoginHandler{Auth: r.AuthService, Sessions: r.SessionService}
	logout := &LogoutHandler{Sessions: r.SessionService}
	me := &MeHandler{Sessions: r.SessionService}

	r.Mux.Handle("POST /v1/auth/signup", signup)
	r.Mux.Handle("POST /v1/auth/login", login)
	r.Mux.Handle("POST /v1/auth/logout", logout)
	r.Mux.Handle("GET /v1/me", me)
}

func (r *Router) registerForum() {
	home := &HomeHandler{Forum: r.ForumService}
	category := &CategoryHandler{Forum: r.ForumService}
	threadList := &ThreadListHandler{Forum: r.ForumService}
	thread := &ThreadHandler{Forum: r.ForumService}

	r.Mux.Handle("GET /v1/home", home)
	r.Mux.Handle("GET /v1/categories/{id}", category)
	r.Mux.Handle("GET /v1/subcategories/{id}/threads", threadList)
	r.Mux.Handle("GET /v1/threads/{id}", thread)

	threads := &ThreadWriteHandler{Forum: r.ForumService, Sessions: r.SessionService}
	posts := &PostWriteHandler{Forum: r.ForumService, Sessions: r.SessionService}

	r.Mux.Handle("POST /v1/subcategories/{id}/threads", http.HandlerFunc(threads.HandleCreate))
	r.Mux.Handle("POST /v1/threads/{id}", http.HandlerFunc(threads.HandleUpdate))
	r.Mux.Handle("DELETE /v1/threads/{id}", http.HandlerFunc(threads.HandleDelete))

	r.Mux.Handle("POST /v1/threads/{id}/posts", http.HandlerFunc(posts.HandleCreate))
	r.Mux.Handle("POST /v1/posts/{id}", http.HandlerFunc(posts.HandleUpdate))
	r.Mux.Handle("DELETE /v1/posts/{id}", http.HandlerFunc(posts.HandleDelete))
}

func (r *Router) registerTheme() {
	r.Mux.Handle("POST /v1/theme", &ThemeHandler{Themes: r.ThemeService})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
