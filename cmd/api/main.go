package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/vet-backoffice/internal/audit"
	"github.com/BruksfildServices01/vet-backoffice/internal/config"
	dbpkg "github.com/BruksfildServices01/vet-backoffice/internal/db"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/dashboard"
	"github.com/BruksfildServices01/vet-backoffice/internal/handlers"
	"github.com/BruksfildServices01/vet-backoffice/internal/infra/cache"
	"github.com/BruksfildServices01/vet-backoffice/internal/infra/memory"
	"github.com/BruksfildServices01/vet-backoffice/internal/infra/messaging"
	infraRepo "github.com/BruksfildServices01/vet-backoffice/internal/infra/repository"
	"github.com/BruksfildServices01/vet-backoffice/internal/infra/s3store"
	"github.com/BruksfildServices01/vet-backoffice/internal/logger"
	"github.com/BruksfildServices01/vet-backoffice/internal/middleware"
	"github.com/BruksfildServices01/vet-backoffice/internal/routes"
	"github.com/BruksfildServices01/vet-backoffice/internal/session"
	ucDashboard "github.com/BruksfildServices01/vet-backoffice/internal/usecase/dashboard"
	"github.com/BruksfildServices01/vet-backoffice/internal/validators"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWTSecret == "changeme" {
			log.Fatal().Msg("JWT_SECRET must be set in production")
		}
	}

	if err := validators.RegisterBindingTags(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	// ======================================================
	// STORAGE BACKEND
	// ======================================================
	repos, auditLogs := storageBackend(cfg)

	// ======================================================
	// REDIS (optional)
	// ======================================================
	redisClient := cache.NewRedisClient(cfg)

	var revocations session.RevocationStore = session.NewMemoryRevocationStore()
	var statsCache dashboard.Cache
	if redisClient != nil {
		revocations = cache.NewRevocationStore(redisClient)
		statsCache = cache.NewStatsCache(redisClient, cfg.StatsCacheTTL)
	}

	// ======================================================
	// AUDIT SINKS
	// ======================================================
	sinks := []audit.Sink{auditLogs}

	var publisher *messaging.Publisher
	if cfg.AMQPURL != "" {
		p, err := messaging.NewPublisher(cfg.AMQPURL, messaging.AuditQueue)
		if err != nil {
			log.Warn().Err(err).Msg("audit broker unavailable, events stay local")
		} else {
			publisher = p
			sinks = append(sinks, publisher)
		}
	}

	dispatcher := audit.NewDispatcher(cfg.AuditQueueSize, sinks...)
	if statsCache != nil {
		dispatcher.WithInline(ucDashboard.NewCacheInvalidator(statsCache))
	}

	// ======================================================
	// HTTP
	// ======================================================
	objects, err := s3store.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure object storage")
	}

	r := gin.New()
	r.Use(logger.GinLogger(), gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	routes.RegisterRoutes(r, routes.Deps{
		Config:     cfg,
		Repos:      repos,
		Objects:    objects,
		Sessions:   session.NewManager(cfg, revocations),
		Audit:      dispatcher,
		AuditLogs:  auditLogs,
		StatsCache: statsCache,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("storage", cfg.StorageDriver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("audit queue not fully drained")
	}
	if publisher != nil {
		_ = publisher.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// auditStore persists audit events and lists them back.
type auditStore interface {
	audit.Sink
	handlers.AuditLogLister
}

// storageBackend picks postgres (default) or the in-process memory store.
func storageBackend(cfg *config.Config) (routes.Repositories, auditStore) {
	if cfg.UsesMemoryStore() {
		log.Warn().Msg("memory storage driver: data is lost on restart")
		st := memory.NewStore()
		return routes.Repositories{
			Ownership:  st.Ownership(),
			Users:      st.Users(),
			Customers:  st.Customers(),
			Pets:       st.Pets(),
			Treatments: st.Treatments(),
			Visits:     st.Visits(),
			Images:     st.Images(),
			Dashboard:  st.Dashboard(),
		}, audit.NewMemoryLog()
	}

	db := dbpkg.NewDB(cfg)
	return routes.Repositories{
		Ownership:  infraRepo.NewOwnershipGormRepository(db),
		Users:      infraRepo.NewUserGormRepository(db),
		Customers:  infraRepo.NewCustomerGormRepository(db),
		Pets:       infraRepo.NewPetGormRepository(db),
		Treatments: infraRepo.NewTreatmentGormRepository(db),
		Visits:     infraRepo.NewVisitGormRepository(db),
		Images:     infraRepo.NewImageGormRepository(db),
		Dashboard:  infraRepo.NewDashboardGormRepository(db),
	}, audit.New(db)
}
