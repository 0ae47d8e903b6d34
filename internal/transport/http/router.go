package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-idv-api/internal/application/idv"
	"github.com/go-idv-api/internal/application/user"
	"github.com/go-idv-api/internal/application/webhook"
	"github.com/go-idv-api/internal/config"
	"github.com/go-idv-api/internal/transport/http/handler"
	appmiddleware "github.com/go-idv-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds the main API router: identity endpoints, verification
// orchestration and debug views.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		// The session rides in a cookie, so the browser must send credentials.
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to user creation.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	userSvc := user.NewService(deps.UserRepo)
	idvSvc := newIDVService(cfg, deps)

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc, cfg.SessionCookieMaxAge)
	idvH := handler.NewIDVHandler(idvSvc)

	r.Get("/health-check/{action}", healthH.Ping)

	r.Route("/server", func(r chi.Router) {
		// ── Session/identity endpoints (no session required) ─────────────────
		r.With(sensitiveRL.Limit).Post("/create_new_user", userH.Create)
		r.Post("/sign_in", userH.SignIn)
		r.Post("/sign_out", userH.SignOut)
		r.Get("/list_all_users", userH.List)
		r.Get("/get_basic_user_info", userH.BasicInfo)
		r.Get("/get_full_user_info", userH.FullInfo)

		// ── Verification orchestration (session required) ────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireSession)

			r.Post("/prefill_idv_data", idvH.Prefill)
			r.Post("/generate_link_token_for_idv", idvH.LinkToken)
			r.Post("/generate_shareable_url", idvH.ShareableURL)
			r.Post("/server_side_idv", idvH.ServerSide)
			r.Post("/idv_complete", idvH.Complete)
			r.Post("/set_recent_idv_session", idvH.SetRecentSession)

			r.Get("/debug/show_most_recent_idv", idvH.ShowMostRecent)
			r.Get("/debug/fetch_user_idv_list", idvH.ListSessions)
			r.Post("/debug/pretend_we_received_webhook", idvH.PretendWebhook)
		})
	})

	return r
}

// NewWebhookRouter builds the router for the separate webhook listener.
func NewWebhookRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)

	// Generous limit; delivery bursts happen when a session finishes.
	webhookRL := appmiddleware.NewRateLimiter(rate.Limit(20), 50)

	whSvc := webhook.NewService(newIDVService(cfg, deps), cfg.PlaidEnv)

	healthH := handler.NewHealthHandler()
	whH := handler.NewWebhookHandler(whSvc)

	r.Get("/health-check/{action}", healthH.Ping)
	r.With(webhookRL.Limit).Post("/server/receive_webhook", whH.Receive)

	return r
}

func newIDVService(cfg *config.Config, deps *Deps) idv.Service {
	return idv.NewService(idv.ServiceDeps{
		UserRepo:             deps.UserRepo,
		Client:               deps.IDVClient,
		Mailer:               deps.Mailer,
		TemplateID:           cfg.TemplateID,
		DataSourceTemplateID: cfg.DataSourceOnlyTemplateID,
	})
}
