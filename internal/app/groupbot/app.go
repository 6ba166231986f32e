package groupbot

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/logcfg"
	botHand "github.com/DenisKhanov/TgGroupBot/internal/tg_bot/api/http"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"net/http"
	"sync"
	"time"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// pollingTimeout is the long polling timeout in seconds.
const pollingTimeout = 60

// App represents the application structure responsible for initializing dependencies
// and running the bot.
type App struct {
	serviceProvider *ServiceProvider // The service provider for dependency injection
	config          *config.Config   // The configuration object for the application
	envFile         string           // Optional .env file loaded before the environment
}

// NewApp creates a new instance of the application.
// A missing bot token or generative key fails here.
func NewApp(ctx context.Context, envFile string) (*App, error) {
	app := &App{envFile: envFile}
	err := app.initDeps(ctx)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// initDeps initializes all dependencies required by the application.
func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initServiceProvider,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// initConfig initializes the application configuration.
func (a *App) initConfig(_ context.Context) error {
	cfg, err := config.NewConfig(a.envFile)
	if err != nil {
		return err
	}
	a.config = cfg
	logcfg.RunLoggerConfig(a.config.EnvLogsLevel, a.config.EnvLogFileName)
	return nil
}

// initServiceProvider initializes the service provider for dependency injection.
func (a *App) initServiceProvider(_ context.Context) error {
	a.serviceProvider = NewServiceProvider(a.config)
	return nil
}

// RunWebhook registers the webhook with Telegram and serves it until ctx is done.
func (a *App) RunWebhook(ctx context.Context) error {
	router, err := a.serviceProvider.Router()
	if err != nil {
		return err
	}
	botAPI, err := a.serviceProvider.BotAPI()
	if err != nil {
		return err
	}

	if base := a.config.WebhookBaseURL(); base != "" {
		a.setWebhook(botAPI, base+botHand.WebhookPath)
	} else {
		logrus.Warn("No public URL configured, the webhook must be registered manually")
	}

	server := &http.Server{Addr: a.config.EnvHTTPAddr, Handler: router}
	serverErr := make(chan error, 1)
	go func() {
		logrus.Infof("Starting webhook server on %s", a.config.EnvHTTPAddr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, failed := <-serverErr:
		if failed {
			return fmt.Errorf("webhook server: %w", err)
		}
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	logrus.Info("Server exited")
	return nil
}

// setWebhook points Telegram at url. A failure is logged and the server still starts.
func (a *App) setWebhook(botAPI *tgbotapi.BotAPI, url string) {
	webhook, err := tgbotapi.NewWebhook(url)
	if err != nil {
		logrus.WithError(err).Errorf("Invalid webhook URL %s", url)
		return
	}
	if _, err = botAPI.Request(webhook); err != nil {
		logrus.WithError(err).Errorf("Failed to set webhook to %s", url)
		return
	}
	logrus.Infof("Webhook set to %s", url)
}

// RunPolling receives updates by long polling until ctx is done. Every update
// is handled in its own goroutine, per-chat state is serialized by the repository.
func (a *App) RunPolling(ctx context.Context) error {
	bot, err := a.serviceProvider.BotService()
	if err != nil {
		return err
	}
	botAPI, err := a.serviceProvider.BotAPI()
	if err != nil {
		return err
	}
	if _, err = botAPI.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		logrus.WithError(err).Warn("Failed to delete webhook before polling")
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollingTimeout
	updates := botAPI.GetUpdatesChan(updateConfig)
	logrus.Infof("Bot @%s is polling for updates", botAPI.Self.UserName)

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Stopping polling...")
			botAPI.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				logrus.Error("telegram update chan closed")
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				bot.HandleUpdate(ctx, update)
			}()
		}
	}
}
