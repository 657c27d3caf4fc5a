package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"mdip/internal/assistant"
	"mdip/internal/config"
	"mdip/internal/logging"
	"mdip/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "mdip",
	Short: "MDIP is a Multi-Domain Intelligence Platform served over MCP",
	Long: `Cyber security incidents, data catalog governance and IT service desk analytics behind
role-gated tabs, with a per-domain AI assistant. Without a subcommand the platform is served as an
MCP server on stdio. Without DATABASE_URL it runs on a seeded in-memory demo store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return err
		}

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Bool("demo", cfg.Demo()).
			Msg("MDIP starting")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if cfg.OpenAI.APIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY is not set; the assistant will answer with an error")
		}
		expert := assistant.New(assistant.NewOpenAIClient(cfg.OpenAI), cfg.ContextRows)

		server := mcp.NewServer(a.loader, a.authenticator(), a.sessions, expert, mcp.Options{
			Version: Version,
			Charts:  cfg.EnableMermaidCharts,
		})
		if err := server.Serve(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("mcp server stopped: %w", err)
		}
		log.Info().Msg("MCP server stopped")
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
