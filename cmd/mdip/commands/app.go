package commands

import (
	"context"
	"fmt"
	"time"

	"mdip/internal/auth"
	"mdip/internal/config"
	"mdip/internal/dashboard"
	"mdip/internal/generator"
	"mdip/internal/repository"
	"mdip/internal/session"
	"mdip/internal/store/memory"
	"mdip/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// app is the wired object graph every command works on.
type app struct {
	cfg      *config.AppConfig
	pool     *pgxpool.Pool
	users    *repository.UserRepository
	loader   *dashboard.Loader
	sessions *session.Manager
}

// openApp connects the repositories to Postgres, or to seeded memory stores in demo mode,
// and loads every snapshot.
func openApp(ctx context.Context, cfg *config.AppConfig) (*app, error) {
	a := &app{cfg: cfg, sessions: session.NewManager()}

	var (
		incidents *repository.IncidentRepository
		datasets  *repository.DatasetRepository
		tickets   *repository.TicketRepository
	)

	if cfg.Demo() {
		log.Info().Msg("DATABASE_URL not set, using the in-memory demo store")
		incidents = repository.NewIncidentRepository(memory.NewIncidentStore())
		datasets = repository.NewDatasetRepository(memory.NewDatasetStore())
		tickets = repository.NewTicketRepository(memory.NewTicketStore())
		a.users = repository.NewUserRepository(memory.NewUserStore())

		if _, err := generator.New(generator.DefaultSeed, time.Now()).Seed(ctx, incidents, datasets, tickets, generator.DefaultOptions); err != nil {
			return nil, fmt.Errorf("failed to seed demo store: %w", err)
		}
	} else {
		pool, err := postgres.NewPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		incidents = repository.NewIncidentRepository(postgres.NewIncidentStore(pool))
		datasets = repository.NewDatasetRepository(postgres.NewDatasetStore(pool))
		tickets = repository.NewTicketRepository(postgres.NewTicketStore(pool))
		a.users = repository.NewUserRepository(postgres.NewUserStore(pool))
	}

	a.loader = dashboard.NewLoader(incidents, datasets, tickets, cfg.Dashboard, nil)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.users.Load(gctx) })
	g.Go(func() error { return a.loader.Refresh(gctx) })
	if err := g.Wait(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	log.Info().
		Int("incidents", incidents.Count()).
		Int("datasets", datasets.Count()).
		Int("tickets", tickets.Count()).
		Int("users", len(a.users.All())).
		Msg("Data loaded")
	return a, nil
}

func (a *app) authenticator() *auth.Authenticator {
	return auth.NewAuthenticator(a.users, a.cfg.BcryptCost)
}

// Close releases the database pool, if any.
func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
