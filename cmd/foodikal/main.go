package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/foodikal/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "foodikal: %v\n", err)
		return 1
	}
	return 0
}

// rootOptions holds flags shared by every command.
type rootOptions struct {
	app.Options
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "foodikal",
		Short: "Browse the foodikal menu and place orders from the terminal",
		Long: `Browse the foodikal menu and place orders from the terminal.

Without a subcommand the interactive shop starts. The menu is shown from
built-in data right away and refreshed from the service in the background.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts.Options)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/foodikal/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/foodikal/prefs.toml)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "dotenv file with overrides (default .env)")
	cmd.Flags().StringVar(&opts.Open, "open", "", "open a product id or category name at start")

	cmd.AddCommand(
		newMenuCommand(opts),
		newBannersCommand(opts),
		newPromoCommand(opts),
	)
	return cmd
}
