package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/talent-scout/external/gemini"
	"github.com/riskibarqy/talent-scout/external/openai"
	"github.com/riskibarqy/talent-scout/external/veo"
	"github.com/riskibarqy/talent-scout/internal/config"
	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"github.com/riskibarqy/talent-scout/internal/domain/assistant"
	"github.com/riskibarqy/talent-scout/internal/domain/media"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	"github.com/riskibarqy/talent-scout/internal/infrastructure/account/password"
	"github.com/riskibarqy/talent-scout/internal/infrastructure/account/token"
	cacherepo "github.com/riskibarqy/talent-scout/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/talent-scout/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/talent-scout/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/talent-scout/internal/infrastructure/storage/local"
	s3storage "github.com/riskibarqy/talent-scout/internal/infrastructure/storage/s3"
	"github.com/riskibarqy/talent-scout/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/talent-scout/internal/platform/cache"
	idgen "github.com/riskibarqy/talent-scout/internal/platform/id"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
	"github.com/riskibarqy/talent-scout/internal/platform/resilience"
	"github.com/riskibarqy/talent-scout/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"
)

// App owns the HTTP server and every background resource it depends on.
type App struct {
	Server *http.Server

	logger    *logging.Logger
	scheduler gocron.Scheduler
	closers   []func() error
}

type repositories struct {
	profiles profile.Repository
	accounts account.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}
	built := false
	defer func() {
		if !built {
			_ = a.closeResources()
		}
	}()

	repos, err := a.openRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	storage, uploadDir, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := token.NewJWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("build token issuer: %w", err)
	}

	text, image, video, err := a.newModels(ctx, cfg)
	if err != nil {
		return nil, err
	}

	authSvc := usecase.NewAuthService(repos.accounts, password.NewBcrypt(bcrypt.DefaultCost), tokens, idgen.NewUUIDGenerator())
	profileSvc := usecase.NewProfileService(repos.profiles, repos.accounts, storage, logger, cfg.UploadWorkers)
	leaderboardSvc := usecase.NewLeaderboardService(repos.profiles)
	assistantSvc := usecase.NewAssistantService(text, image, video)

	a.scheduler, err = newLeaderboardScheduler(leaderboardSvc, cfg.LeaderboardRefreshInterval, logger)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(authSvc, profileSvc, leaderboardSvc, assistantSvc, logger, cfg.UploadMaxBytes)
	router := httpapi.NewRouter(handler, tokens, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		UploadPrefix:       cfg.UploadPublicPrefix,
		UploadDir:          uploadDir,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	built = true
	return a, nil
}

// Start launches the background jobs. The caller runs Server itself.
func (a *App) Start() {
	if a.scheduler != nil {
		a.scheduler.Start()
	}
}

// Shutdown drains the HTTP server, then stops jobs and closes resources.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if err := a.closeResources(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeResources() error {
	var errs []error
	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("shutdown scheduler: %w", err))
		}
		a.scheduler = nil
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	var repos repositories
	if cfg.DBURL == "" {
		a.logger.Warn("DB_URL empty, using in-memory store")
		store := memory.NewStore()
		repos = repositories{profiles: store, accounts: store}
	} else {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, db.Close)
		repos = repositories{
			profiles: postgres.NewProfileRepository(db),
			accounts: postgres.NewAccountRepository(db),
		}
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos = repositories{
			profiles: cacherepo.NewProfileRepository(repos.profiles, store),
			accounts: cacherepo.NewAccountRepository(repos.accounts, store),
		}
	}
	return repos, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	attrs := []attribute.KeyValue{attribute.String("db.system", "postgresql")}
	if name := dbNameFromURL(dsn); name != "" {
		attrs = append(attrs, attribute.String("db.name", name))
	}

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attrs...),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// newStorage returns the configured file store and, for local storage, the
// directory the router serves uploads from.
func newStorage(ctx context.Context, cfg config.Config) (media.Storage, string, error) {
	switch cfg.StorageDriver {
	case config.StorageS3:
		store, err := s3storage.New(ctx, s3storage.Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			KeyPrefix:       cfg.S3KeyPrefix,
			UsePathStyle:    cfg.S3UsePathStyle,
			MaxBytes:        cfg.UploadMaxBytes,
			CircuitBreaker:  circuitConfig(cfg),
		})
		if err != nil {
			return nil, "", fmt.Errorf("build s3 storage: %w", err)
		}
		return store, "", nil
	default:
		store, err := local.New(cfg.UploadDir, cfg.UploadPublicPrefix, cfg.UploadMaxBytes)
		if err != nil {
			return nil, "", fmt.Errorf("build local storage: %w", err)
		}
		return store, store.Dir(), nil
	}
}

// newModels builds the hosted model clients that have credentials. A model
// without credentials stays nil and its assistant operations report an
// upstream failure.
func (a *App) newModels(ctx context.Context, cfg config.Config) (assistant.TextModel, assistant.ImageModel, assistant.VideoModel, error) {
	var (
		text  assistant.TextModel
		image assistant.ImageModel
		video assistant.VideoModel
	)
	breaker := circuitConfig(cfg)

	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, gemini.ClientConfig{
			APIKey:         cfg.GeminiAPIKey,
			Model:          cfg.GeminiModel,
			Timeout:        cfg.AITimeout,
			Logger:         a.logger,
			CircuitBreaker: breaker,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("build gemini client: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		text = client

		videoClient, err := veo.NewClient(veo.ClientConfig{
			HTTPClient:     &http.Client{Timeout: cfg.AITimeout},
			BaseURL:        cfg.GeminiBaseURL,
			APIKey:         cfg.GeminiAPIKey,
			Model:          cfg.GeminiVideoModel,
			PollInterval:   cfg.VideoPollInterval,
			MaxWait:        cfg.VideoMaxWait,
			Logger:         a.logger,
			CircuitBreaker: breaker,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("build veo client: %w", err)
		}
		video = videoClient
	} else {
		a.logger.Warn("GEMINI_API_KEY empty, text and video assistant disabled")
	}

	if cfg.OpenAIAPIKey != "" {
		client, err := openai.NewClient(openai.ClientConfig{
			APIKey:         cfg.OpenAIAPIKey,
			BaseURL:        cfg.OpenAIBaseURL,
			Model:          cfg.OpenAIImageModel,
			Timeout:        cfg.AITimeout,
			Logger:         a.logger,
			CircuitBreaker: breaker,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("build openai client: %w", err)
		}
		image = client
	} else {
		a.logger.Warn("OPENAI_API_KEY empty, achievement images disabled")
	}

	return text, image, video, nil
}

func circuitConfig(cfg config.Config) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          cfg.AICircuitEnabled,
		FailureThreshold: cfg.AICircuitFailureCount,
		OpenTimeout:      cfg.AICircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.AICircuitHalfOpenMaxReq,
	}
}
