package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/totl-app/totl-api/internal/config"
	"github.com/totl-app/totl-api/internal/domain/fixture"
	"github.com/totl-app/totl-api/internal/domain/minileague"
	"github.com/totl-app/totl-api/internal/domain/notification"
	"github.com/totl-app/totl-api/internal/domain/pick"
	"github.com/totl-app/totl-api/internal/domain/result"
	"github.com/totl-app/totl-api/internal/domain/user"
	"github.com/totl-app/totl-api/internal/infrastructure/push"
	"github.com/totl-app/totl-api/internal/infrastructure/push/onesignal"
	cacherepo "github.com/totl-app/totl-api/internal/infrastructure/repository/cache"
	"github.com/totl-app/totl-api/internal/infrastructure/repository/memory"
	"github.com/totl-app/totl-api/internal/infrastructure/repository/postgres"
	"github.com/totl-app/totl-api/internal/interfaces/httpapi"
	platformcache "github.com/totl-app/totl-api/internal/platform/cache"
	"github.com/totl-app/totl-api/internal/platform/logging"
	"github.com/totl-app/totl-api/internal/platform/resilience"
	"github.com/totl-app/totl-api/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	fixtures fixture.Repository
	picks    pick.Repository
	results  result.Repository
	users    user.Repository
	leagues  minileague.Repository
	tables   minileague.TableWriter
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closeDB, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := platformcache.NewStore(cfg.CacheTTL)
		repos.fixtures = cacherepo.NewFixtureRepository(repos.fixtures, store)
		repos.users = cacherepo.NewUserRepository(repos.users, store)
		repos.leagues = cacherepo.NewMiniLeagueRepository(repos.leagues, store)
	}

	dispatcher := buildDispatcher(cfg, logger)

	standings := usecase.NewStandingsService(repos.fixtures, repos.picks, repos.results, repos.users, logger)
	leagues := usecase.NewMiniLeagueService(repos.leagues, repos.fixtures, standings, logger)
	webhooks := usecase.NewScoreWebhookService(repos.fixtures, repos.picks, repos.results, repos.users, dispatcher, standings, logger)
	results := usecase.NewResultService(repos.fixtures, repos.results, logger)
	recounts := usecase.NewRecountService(repos.leagues, repos.tables, leagues, cfg.RecountWorkers, logger)

	handler := httpapi.NewHandler(standings, leagues, webhooks, results, recounts, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeDB, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("db url empty, using seeded in-memory repositories")
		leagueRepo := memory.NewMiniLeagueRepository(memory.SeedMiniLeagues(), memory.SeedMiniLeagueMembers(), nil)
		return repositories{
			fixtures: memory.NewFixtureRepository(memory.SeedFixtures()),
			picks:    memory.NewPickRepository(memory.SeedPicks()),
			results:  memory.NewResultRepository(memory.SeedResults()),
			users:    memory.NewUserRepository(memory.SeedUsers()),
			leagues:  leagueRepo,
			tables:   leagueRepo,
		}, func() error { return nil }, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}

	leagueRepo := postgres.NewMiniLeagueRepository(db)
	return repositories{
		fixtures: postgres.NewFixtureRepository(db),
		picks:    postgres.NewPickRepository(db),
		results:  postgres.NewResultRepository(db),
		users:    postgres.NewUserRepository(db),
		leagues:  leagueRepo,
		tables:   leagueRepo,
	}, db.Close, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}

func buildDispatcher(cfg config.Config, logger *logging.Logger) notification.Dispatcher {
	if !cfg.OneSignalEnabled {
		logger.Info("onesignal disabled, dispatching to log only")
		return push.NewLogDispatcher(logger)
	}

	return onesignal.NewClient(onesignal.ClientConfig{
		BaseURL:    cfg.OneSignalBaseURL,
		AppID:      cfg.OneSignalAppID,
		APIKey:     cfg.OneSignalAPIKey,
		Timeout:    cfg.OneSignalTimeout,
		MaxRetries: cfg.OneSignalMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OneSignalCircuitEnabled,
			FailureThreshold: cfg.OneSignalCircuitFails,
			OpenTimeout:      cfg.OneSignalCircuitOpenFor,
			HalfOpenMaxReq:   cfg.OneSignalCircuitHalfMax,
		},
	})
}
