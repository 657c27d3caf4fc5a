package commands

import (
	"fmt"

	"mdip/internal/domain"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	userName     string
	userPassword string
	userRole     string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage dashboard accounts",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a dashboard account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Demo() {
			log.Warn().Msg("Registering against the demo store; the account is lost on exit")
		}
		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.authenticator().Register(cmd.Context(), userName, userPassword, domain.Role(userRole))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", u.Username, u.Role)
		return nil
	},
}

func init() {
	userRegisterCmd.Flags().StringVar(&userName, "username", "", "account username")
	userRegisterCmd.Flags().StringVar(&userPassword, "password", "", "account password")
	userRegisterCmd.Flags().StringVar(&userRole, "role", "", `department: "Cyber Security", "Data Scientist" or "IT Operations"`)
	_ = userRegisterCmd.MarkFlagRequired("username")
	_ = userRegisterCmd.MarkFlagRequired("password")
	_ = userRegisterCmd.MarkFlagRequired("role")

	userCmd.AddCommand(userRegisterCmd)
	rootCmd.AddCommand(userCmd)
}
