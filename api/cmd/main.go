package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/devevent-service/internal/application/booking"
	"github.com/baechuer/devevent-service/internal/application/event"
	"github.com/baechuer/devevent-service/internal/config"
	"github.com/baechuer/devevent-service/internal/fallback"
	redisCache "github.com/baechuer/devevent-service/internal/infrastructure/caching/redis"
	"github.com/baechuer/devevent-service/internal/infrastructure/db/mongo"
	rabbitpub "github.com/baechuer/devevent-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/devevent-service/internal/infrastructure/storage/s3"
	"github.com/baechuer/devevent-service/internal/logger"
	"github.com/baechuer/devevent-service/internal/media"
	"github.com/baechuer/devevent-service/internal/transport/http/handlers"
	authmw "github.com/baechuer/devevent-service/internal/transport/http/middleware"
	"github.com/baechuer/devevent-service/internal/transport/http/router"
)

const (
	warmupTimeout   = 10 * time.Second
	shutdownTimeout = 15 * time.Second
)

// sysClock implements the application Clock interfaces using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// store is what the app needs from the Connection Manager beyond Acquire.
type store interface {
	mongo.Connector
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	Store  store

	Cache     *redisCache.Client
	Publisher *rabbitpub.Publisher
	Images    media.ObjectStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := NewApp(rootCtx, cfg)
	defer app.Close()

	{
		// Connecting also builds the indexes; a failure here is retried on first use.
		ctx, cancel := context.WithTimeout(rootCtx, warmupTimeout)
		if err := app.Store.Ping(ctx); err != nil {
			zlog.Warn().Err(err).Msg("mongo warm-up failed; continuing")
		}
		cancel()
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	case <-rootCtx.Done():
		zlog.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(ctx); err != nil {
			zlog.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

// NewApp wires the service. Optional dependencies that are unset or
// unreachable are replaced by their degraded stand-ins.
func NewApp(ctx context.Context, cfg *config.Config) *App {
	app := &App{Config: cfg}
	clock := sysClock{}

	// 1) Infrastructure
	if cfg.MongoURI != "" {
		m, err := mongo.NewManager(mongo.Config{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDatabase,
			ConnectTimeout: cfg.MongoConnectTimeout,
		})
		if err != nil {
			zlog.Fatal().Err(err).Msg("mongo manager init failed")
		}
		app.Store = m
	} else {
		zlog.Warn().Msg("MONGODB_URI empty: serving the fallback catalog, writes will fail")
		app.Store = mongo.Unavailable{}
	}
	eventRepo := mongo.NewEventRepo(app.Store, cfg.MongoOpTimeout)
	bookingRepo := mongo.NewBookingRepo(app.Store, cfg.MongoOpTimeout)

	var cache event.Cache
	if cfg.RedisURL != "" {
		c, err := redisCache.New(cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("redis unavailable: caching disabled")
		} else {
			app.Cache = c
			cache = c
		}
	}

	var pub event.EventPublisher = event.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Warn().Err(err).Msg("rabbit publisher init failed: domain events will not be published")
		} else {
			app.Publisher = p
			pub = p
			zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
		}
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: domain events will not be published")
	}

	app.Images = media.Disabled{}
	if cfg.S3Bucket != "" {
		c, err := s3.NewClient(ctx, s3.Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
			Bucket:          cfg.S3Bucket,
			PublicBaseURL:   cfg.CDNBaseURL,
		})
		if err != nil {
			zlog.Warn().Err(err).Msg("s3 client init failed: image uploads disabled")
		} else {
			app.Images = c
		}
	}
	uploader := media.NewUploader(app.Images, media.Limits{
		MaxBytes:  cfg.MaxUploadSize,
		MaxWidth:  cfg.MaxImageWidth,
		MaxHeight: cfg.MaxImageHeight,
	})

	// 2) Application
	events := event.New(eventRepo, clock, pub, cache, uploader, cfg.CacheTTLDetails, cfg.CacheTTLList)
	bookings := booking.New(bookingRepo, events, clock, pub)

	// 3) Transport
	h := handlers.NewEventsHandler(events, bookings, fallback.New(), cfg.MaxUploadSize)
	b := handlers.NewBookingsHandler(bookings)

	deps := map[string]handlers.Pinger{"mongodb": app.Store}
	if app.Cache != nil {
		deps["redis"] = app.Cache
	}
	z := handlers.NewHealthHandler(deps)

	var auth *authmw.AuthMiddleware
	if cfg.JWTSecret != "" {
		auth = authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer, "organizer", "admin")
	} else {
		zlog.Warn().Msg("AUTH_JWT_SECRET empty: authoring routes are open")
	}

	// 4) Router
	httpHandler := router.New(h, b, z, auth, cfg)

	// 5) Server
	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return app
}

// Close releases connections held by the app.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.Store.Close(ctx); err != nil {
		zlog.Warn().Err(err).Msg("mongo disconnect failed")
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if a.Publisher != nil {
		_ = a.Publisher.Close()
	}
}
