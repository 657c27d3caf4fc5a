package generator

import (
	"context"
	"fmt"

	"mdip/internal/repository"

	"github.com/rs/zerolog/log"
)

// Counts reports how many records Seed inserted.
type Counts struct {
	Incidents int `json:"incidents"`
	Datasets  int `json:"datasets"`
	Tickets   int `json:"tickets"`
}

// Options sizes the generated data.
type Options struct {
	IncidentDays int
	TicketCount  int
}

// DefaultOptions are the sizes of the demo data set.
var DefaultOptions = Options{IncidentDays: 30, TicketCount: 150}

// Seed generates data and adds it through the repositories. Datasets and tickets whose key
// already exists are skipped so that seeding twice is harmless.
func (g *Generator) Seed(ctx context.Context, incidents *repository.IncidentRepository, datasets *repository.DatasetRepository, tickets *repository.TicketRepository, opts Options) (Counts, error) {
	var c Counts

	for _, inc := range g.Incidents(opts.IncidentDays) {
		if _, err := incidents.Add(ctx, inc); err != nil {
			return c, fmt.Errorf("failed to seed incident: %w", err)
		}
		c.Incidents++
	}

	for _, d := range g.Datasets() {
		if _, exists := datasets.Get(d.Name); exists {
			continue
		}
		if _, err := datasets.Add(ctx, d); err != nil {
			return c, fmt.Errorf("failed to seed dataset %s: %w", d.Name, err)
		}
		c.Datasets++
	}

	for _, t := range g.Tickets(opts.TicketCount) {
		if _, exists := tickets.Get(t.TicketID); exists {
			continue
		}
		if _, err := tickets.Add(ctx, t); err != nil {
			return c, fmt.Errorf("failed to seed ticket %s: %w", t.TicketID, err)
		}
		c.Tickets++
	}

	log.Info().Int("incidents", c.Incidents).Int("datasets", c.Datasets).Int("tickets", c.Tickets).Msg("Seeded synthetic data")
	return c, nil
}
