// Package bootstrap wires configuration, storage, repositories, services
// and HTTP handlers into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andreslomelig/NovaFolio/internal/cases"
	"github.com/andreslomelig/NovaFolio/internal/clients"
	"github.com/andreslomelig/NovaFolio/internal/documents"
	"github.com/andreslomelig/NovaFolio/internal/indexer"
	"github.com/andreslomelig/NovaFolio/internal/pages"
	"github.com/andreslomelig/NovaFolio/internal/search"
	"github.com/andreslomelig/NovaFolio/internal/shared/config"
	"github.com/andreslomelig/NovaFolio/internal/shared/server"
	"github.com/andreslomelig/NovaFolio/internal/shared/storage/blob"
	"github.com/andreslomelig/NovaFolio/internal/shared/storage/db"
	"github.com/andreslomelig/NovaFolio/internal/shared/telemetry"
	"github.com/andreslomelig/NovaFolio/internal/tenants"
)

// App holds the wired application.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Blob      *blob.Store
	TenantID  string
	Indexer   *indexer.Service
	Documents *documents.Service
}

// Build assembles the application. With a reachable DATABASE_URL it runs
// migrations and uses Postgres; in dev, when the database is missing or
// unreachable, it falls back to in-memory repositories so the API stays
// usable without infrastructure.
func Build(cfg config.Config) (*App, error) {
	store := blob.New(cfg.StorageDir)
	root, err := store.EnsureRoot()
	if err != nil {
		return nil, fmt.Errorf("prepare storage dir: %w", err)
	}

	database, err := connectDB(cfg)
	if err != nil {
		return nil, err
	}

	var (
		tenantID    string
		pagesRepo   pages.Repo
		docsRepo    documents.Repo
		casesRepo   cases.Repo
		clientsRepo clients.Repo
		engine      search.Engine
	)

	if database != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := db.RunMigrations(ctx, database); err != nil {
			database.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		tenantID, err = tenants.EnsureDefault(ctx, database, cfg.DefaultTenant)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("ensure default tenant: %w", err)
		}

		pagesRepo = &pages.PGRepo{DB: database}
		docsRepo = &documents.PGRepo{DB: database}
		casesRepo = &cases.PGRepo{DB: database}
		clientsRepo = &clients.PGRepo{DB: database}
		engine = &search.PGEngine{DB: database, TenantID: tenantID}
	} else {
		tenantID = uuid.NewString()

		memPages := pages.NewMemoryRepo()
		memDocs := documents.NewMemoryRepo(memPages)
		memCases := cases.NewMemoryRepo(memDocs)
		memClients := clients.NewMemoryRepo(memCases)

		pagesRepo = memPages
		docsRepo = memDocs
		casesRepo = memCases
		clientsRepo = memClients
		engine = &search.MemoryEngine{Pages: memPages, Docs: memDocs}
	}

	docsSvc := &documents.Service{
		Repo:     docsRepo,
		Pages:    pagesRepo,
		Cases:    casesRepo,
		Blob:     store,
		TenantID: tenantID,
	}

	idx := indexer.New(docsSvc, store, cfg.IndexWorkers)
	idx.Start(context.Background())
	docsSvc.Queue = idx

	casesSvc := cases.NewService(casesRepo, clientsRepo, idx, tenantID)
	clientsSvc := clients.NewService(clientsRepo, idx, tenantID)

	router := server.NewRouter(server.RouterDeps{
		Config:      cfg,
		StorageRoot: root,
		Handlers: []server.RouteRegistrar{
			clients.NewHandler(clientsSvc),
			cases.NewHandler(casesSvc),
			documents.NewHandler(docsSvc),
			search.NewHandler(engine),
		},
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"tenant_id": tenantID,
		"storage":   root,
		"postgres":  database != nil,
	})

	return &App{
		Config:    cfg,
		Router:    router,
		DB:        database,
		Blob:      store,
		TenantID:  tenantID,
		Indexer:   idx,
		Documents: docsSvc,
	}, nil
}

// connectDB opens the database. A nil database without error means dev
// mode runs on in-memory repositories; production refuses to start
// without Postgres.
func connectDB(cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultOptions()))
	if err != nil {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		telemetry.Warn("bootstrap.db_unavailable_using_memory", map[string]any{"error": err.Error()})
		return nil, nil
	}
	return database, nil
}

// Close releases background workers and connections.
func (a *App) Close() {
	if a.Indexer != nil {
		a.Indexer.Stop()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
