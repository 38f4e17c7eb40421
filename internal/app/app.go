package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/itsSambuddha/secons-api/internal/config"
	"github.com/itsSambuddha/secons-api/internal/domain/announcement"
	"github.com/itsSambuddha/secons-api/internal/domain/match"
	"github.com/itsSambuddha/secons-api/internal/domain/team"
	"github.com/itsSambuddha/secons-api/internal/domain/user"
	"github.com/itsSambuddha/secons-api/internal/infrastructure/account/gateway"
	"github.com/itsSambuddha/secons-api/internal/infrastructure/notifier"
	"github.com/itsSambuddha/secons-api/internal/infrastructure/repository/memory"
	"github.com/itsSambuddha/secons-api/internal/infrastructure/repository/postgres"
	"github.com/itsSambuddha/secons-api/internal/interfaces/httpapi"
	"github.com/itsSambuddha/secons-api/internal/platform/cache"
	idgen "github.com/itsSambuddha/secons-api/internal/platform/id"
	"github.com/itsSambuddha/secons-api/internal/platform/logging"
	"github.com/itsSambuddha/secons-api/internal/usecase"
)

// Application owns the wired service graph and the resources that need
// closing on shutdown.
type Application struct {
	Server    *http.Server
	Lifecycle *usecase.LifecycleService

	cfg config.Config
	hub *notifier.Hub
	db  *sqlx.DB
}

func New(cfg config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	zapLogger := logging.Default()

	var (
		matchRepo        match.Repository
		teamRepo         team.Repository
		announcementRepo announcement.Repository
		db               *sqlx.DB
	)
	if cfg.DBURL != "" {
		conn, err := sqlx.Connect("postgres", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		db = conn
		matchRepo = postgres.NewMatchRepository(db)
		teamRepo = postgres.NewTeamRepository(db)
		announcementRepo = postgres.NewAnnouncementRepository(db)
	} else {
		matchRepo = memory.NewMatchRepository()
		teamRepo = memory.NewTeamRepository(memory.SeedTeams())
		announcementRepo = memory.NewAnnouncementRepository()
	}

	hub, err := notifier.NewHub(notifier.Config{
		Workers:    cfg.NotifierWorkers,
		WebhookURL: cfg.WebhookURL,
	}, zapLogger.WithComponent("notifier"))
	if err != nil {
		return nil, fmt.Errorf("build notifier hub: %w", err)
	}

	matchSvc := usecase.NewMatchService(matchRepo, teamRepo, idgen.NewPrefixed("mt"), hub, zapLogger.WithComponent("match"))
	lifecycleSvc := usecase.NewLifecycleService(matchRepo, hub, zapLogger.WithComponent("lifecycle"))
	scoringSvc := usecase.NewScoringService(matchRepo, hub, zapLogger.WithComponent("scoring"))
	teamSvc := usecase.NewTeamService(teamRepo, zapLogger.WithComponent("team"))
	announcementSvc := usecase.NewAnnouncementService(announcementRepo, idgen.NewPrefixed("an"), zapLogger.WithComponent("announcement"))

	verifier, err := buildVerifier(cfg, zapLogger.WithComponent("auth"))
	if err != nil {
		return nil, err
	}

	liveCache := cache.NewStore(cfg.LiveCacheTTL)
	handler := httpapi.NewHandler(matchSvc, lifecycleSvc, scoringSvc, teamSvc, announcementSvc, liveCache, hub, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Application{
		Server:    server,
		Lifecycle: lifecycleSvc,
		cfg:       cfg,
		hub:       hub,
		db:        db,
	}, nil
}

// StartScheduler runs the auto-live loop until ctx is cancelled.
func (a *Application) StartScheduler(ctx context.Context) {
	go a.Lifecycle.Run(ctx, a.cfg.AutoLiveInterval)
}

func (a *Application) Close() error {
	a.hub.Close()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func buildVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	if cfg.AuthIntrospectURL != "" {
		return gateway.NewClient(&http.Client{Timeout: cfg.AuthTimeout}, cfg.AuthIntrospectURL, logger), nil
	}

	tokens := make(map[string]user.Principal, len(cfg.StaticTokens))
	for token, grant := range cfg.StaticTokens {
		principal, err := parseGrant(grant)
		if err != nil {
			return nil, fmt.Errorf("parse AUTH_STATIC_TOKENS grant %q: %w", grant, err)
		}
		tokens[token] = principal
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no token verifier configured")
	}

	return gateway.NewStaticVerifier(tokens), nil
}

// parseGrant reads a "user@role" grant from config.
func parseGrant(grant string) (user.Principal, error) {
	parts := strings.SplitN(grant, "@", 2)
	if len(parts) != 2 {
		return user.Principal{}, fmt.Errorf("expected user@role")
	}
	userID := strings.TrimSpace(parts[0])
	role := strings.ToLower(strings.TrimSpace(parts[1]))
	if userID == "" {
		return user.Principal{}, fmt.Errorf("user id cannot be empty")
	}
	switch role {
	case user.RoleAdmin, user.RoleOperator, user.RoleViewer:
	default:
		return user.Principal{}, fmt.Errorf("unknown role %q", role)
	}

	return user.Principal{UserID: userID, Role: role, Domain: "secons"}, nil
}
