package main

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/app/groupbot"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "groupbot",
		Short:         "Telegram group management bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "bot.env", "dotenv file loaded before the environment, ignored when missing")

	root.AddCommand(&cobra.Command{
		Use:   "webhook",
		Short: "Serve the Telegram webhook over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), envFile, (*groupbot.App).RunWebhook)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "poll",
		Short: "Receive updates by long polling",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), envFile, (*groupbot.App).RunPolling)
		},
	})
	return root
}

// run builds the application and runs mode until SIGINT or SIGTERM.
func run(parent context.Context, envFile string, mode func(*groupbot.App, context.Context) error) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := groupbot.NewApp(ctx, envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "groupbot: %v\n", err)
		return err
	}
	if err = mode(app, ctx); err != nil {
		fmt.Fprintf(os.Stderr, "groupbot: %v\n", err)
		return err
	}
	return nil
}
