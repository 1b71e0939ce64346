package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"dinas-portal/internal/config"
	"dinas-portal/internal/domain/entity"
	hhttp "dinas-portal/internal/handler/http"
	"dinas-portal/internal/handler/http/announcement"
	hauth "dinas-portal/internal/handler/http/auth"
	"dinas-portal/internal/handler/http/download"
	"dinas-portal/internal/handler/http/middleware"
	"dinas-portal/internal/handler/http/news"
	"dinas-portal/internal/handler/http/profilepage"
	"dinas-portal/internal/handler/http/requestid"
	"dinas-portal/internal/infra/adapter/persistence/sqlstore"
	"dinas-portal/internal/observability/tracing"
	"dinas-portal/internal/resilience/circuitbreaker"
	"dinas-portal/internal/usecase/content"

	_ "dinas-portal/docs" // swagger docs
)

// server is the assembled HTTP surface plus the background pieces main has to run.
type server struct {
	Handler http.Handler
	Limiter *middleware.IPRateLimiter
}

type contentServices struct {
	News         *content.NewsService
	Announcement *content.AnnouncementService
	ProfilePage  *content.ProfilePageService
	Download     *content.DownloadService
	Breakers     []hhttp.Breaker
}

// services builds the use cases over breaker-guarded stores.
func services(store *sqlstore.DB) contentServices {
	newsStore := circuitbreaker.Guard[entity.News, entity.NewsPatch](sqlstore.NewsStore(store), "news", circuitbreaker.DBConfig("store.news"))
	announcementStore := circuitbreaker.Guard[entity.Announcement, entity.AnnouncementPatch](sqlstore.AnnouncementStore(store), "announcement", circuitbreaker.DBConfig("store.announcement"))
	pageStore := circuitbreaker.GuardProfilePages(sqlstore.ProfilePageStore(store), circuitbreaker.DBConfig("store.profile_page"))
	downloadStore := circuitbreaker.GuardDownloads(sqlstore.DownloadStore(store), circuitbreaker.DBConfig("store.download"))

	return contentServices{
		News:         content.NewNewsService(newsStore),
		Announcement: content.NewAnnouncementService(announcementStore),
		ProfilePage:  content.NewProfilePageService(pageStore),
		Download:     content.NewDownloadService(downloadStore),
		Breakers: []hhttp.Breaker{
			newsStore.Breaker(),
			announcementStore.Breaker(),
			pageStore.Breaker(),
			downloadStore.Breaker(),
		},
	}
}

// newServer wires routes and the middleware chain.
//
// Middleware order: CORS → Request ID → Tracing → Logging → Metrics → Recovery → Timeout → Body Limit.
func newServer(cfg *config.Config, logger *slog.Logger, database *sql.DB, store *sqlstore.DB) (*server, error) {
	proxies, err := middleware.ParseTrustedProxies(cfg.HTTP.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	limiter := middleware.NewIPRateLimiter(cfg.Hits.RatePerSecond, cfg.Hits.Burst, middleware.NewIPExtractor(proxies))

	var authz func(http.Handler) http.Handler
	issuer := hauth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if issuer != nil {
		authz = hauth.Authz(issuer)
	} else {
		logger.Warn("JWT_SECRET is not set: content mutations are open to anyone")
	}

	svc := services(store)

	mux := http.NewServeMux()
	news.Register(mux, svc.News, authz)
	announcement.Register(mux, svc.Announcement, authz)
	profilepage.Register(mux, svc.ProfilePage, authz)
	download.Register(mux, svc.Download, authz, limiter.Middleware)

	mux.Handle("POST   /auth/token", hauth.TokenHandler{
		Issuer:   issuer,
		Accounts: hauth.NewAdminProvider(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash),
	})
	mux.Handle("GET    /health", &hhttp.HealthHandler{DB: database, Breakers: svc.Breakers, Version: cfg.Version})
	mux.Handle("GET    /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET    /live", hhttp.LiveHandler{})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())
	mux.Handle("GET    /swagger/", httpSwagger.WrapHandler)

	cors := middleware.DefaultCORSConfig(cfg.HTTP.CORSOrigins)
	cors.Logger = logger
	logger.Info("CORS enabled", slog.Any("allowed_origins", cfg.HTTP.CORSOrigins))

	handler := hhttp.Chain(mux,
		middleware.CORS(cors),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		hhttp.Recover(logger),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
	)
	return &server{Handler: handler, Limiter: limiter}, nil
}
