package commands

import (
	"fmt"
	"time"

	"mdip/internal/generator"

	"github.com/spf13/cobra"
)

var (
	seedValue   int64
	seedDays    int
	seedTickets int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with synthetic incidents, datasets and tickets",
	Long: `Generates reproducible synthetic data: incidents over the last --days days with a rising phishing
trend, the twelve catalog datasets and --tickets service desk tickets. Datasets and tickets that
already exist are skipped; incidents are always appended.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Demo() {
			return errNeedsDatabase
		}
		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		gen := generator.New(seedValue, time.Now())
		counts, err := gen.Seed(cmd.Context(), a.loader.Incidents, a.loader.Datasets, a.loader.Tickets, generator.Options{
			IncidentDays: seedDays,
			TicketCount:  seedTickets,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d incidents, %d datasets, %d tickets\n", counts.Incidents, counts.Datasets, counts.Tickets)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int64Var(&seedValue, "seed", generator.DefaultSeed, "random seed")
	seedCmd.Flags().IntVar(&seedDays, "days", generator.DefaultOptions.IncidentDays, "days of incidents to generate")
	seedCmd.Flags().IntVar(&seedTickets, "tickets", generator.DefaultOptions.TicketCount, "number of tickets to generate")
	rootCmd.AddCommand(seedCmd)
}
