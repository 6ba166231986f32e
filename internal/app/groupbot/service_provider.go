// Package groupbot provides dependency injection and service management for the group bot.
// It initializes and provides access to the services, repository and transport the bot needs.
package groupbot

import (
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/api"
	botHand "github.com/DenisKhanov/TgGroupBot/internal/tg_bot/api/http"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/config"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/content"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/infra/generative"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/metrics"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/repository"
	botServ "github.com/DenisKhanov/TgGroupBot/internal/tg_bot/service"
	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"sync"
)

// Generation settings of the /ai command.
const (
	generativeMaxTokens   = 1024
	generativeTemperature = 0.7
)

// ServiceProvider manages the dependency injection for the bot components.
type ServiceProvider struct {
	config *config.Config

	// Services
	weatherService    botServ.Weather
	translateService  botServ.Translate
	dictionaryService botServ.Dictionary
	generativeService botServ.GenerativeModel

	// ChatStateRepository
	chatStates *repository.ChatStates

	content *content.Content
	metrics *metrics.Metrics

	// Bot API
	botAPI *tgbotapi.BotAPI

	// Bot service
	botService *botServ.TgBotServices

	router chi.Router

	// First errors of the fallible getters
	generativeErr error
	contentErr    error
	botAPIErr     error
	botServiceErr error

	weatherOnce    sync.Once
	translateOnce  sync.Once
	dictionaryOnce sync.Once
	generativeOnce sync.Once
	stateRepoOnce  sync.Once
	contentOnce    sync.Once
	metricsOnce    sync.Once
	botAPIOnce     sync.Once
	botServiceOnce sync.Once
	routerOnce     sync.Once
}

// NewServiceProvider creates a new instance of the service provider.
func NewServiceProvider(cfg *config.Config) *ServiceProvider {
	return &ServiceProvider{config: cfg}
}

// WeatherService returns the weather client.
func (s *ServiceProvider) WeatherService() botServ.Weather {
	s.weatherOnce.Do(func() {
		s.weatherService = api.NewWeatherAPI(s.config.EnvWeatherApiEndpoint, s.config.EnvWeatherApiKey, s.config.EnvHTTPClientTimeout)
		if s.config.EnvWeatherApiKey == "" {
			logrus.Warn("WEATHER_API_KEY is not set, /weather will always fail")
		}
		logrus.Info("WeatherService initialized")
	})
	return s.weatherService
}

// TranslateService returns the translation client.
func (s *ServiceProvider) TranslateService() botServ.Translate {
	s.translateOnce.Do(func() {
		s.translateService = api.NewTranslateAPI(s.config.EnvTranslateApiEndpoint, s.config.EnvTranslateApiKey, s.config.EnvHTTPClientTimeout)
		logrus.Info("TranslateService initialized")
	})
	return s.translateService
}

// DictionaryService returns the dictionary client.
func (s *ServiceProvider) DictionaryService() botServ.Dictionary {
	s.dictionaryOnce.Do(func() {
		s.dictionaryService = api.NewDictionaryAPI(s.config.EnvDictionaryApiEndpoint, s.config.EnvDictionaryApiKey, s.config.EnvHTTPClientTimeout)
		logrus.Info("DictionaryService initialized")
	})
	return s.dictionaryService
}

// GenerativeService returns the generative model selected by GENERATIVE_NAME.
func (s *ServiceProvider) GenerativeService() (botServ.GenerativeModel, error) {
	s.generativeOnce.Do(func() {
		s.generativeService, s.generativeErr = generative.ModelFactory(
			s.config.EnvGenerativeName,
			s.config.EnvGenerativeApiKey,
			s.config.EnvGenerativeModel,
			s.config.EnvGenerativeBaseURL,
			generativeMaxTokens,
			generativeTemperature,
		)
		if s.generativeErr != nil {
			logrus.Errorf("Failed to initialize Generative service: %v", s.generativeErr)
			s.generativeService = nil
		}
	})
	if s.generativeErr != nil {
		return nil, fmt.Errorf("generative service not initialized: %w", s.generativeErr)
	}
	return s.generativeService, nil
}

// ChatStateRepository returns the in-memory chat state store.
func (s *ServiceProvider) ChatStateRepository() *repository.ChatStates {
	s.stateRepoOnce.Do(func() {
		s.chatStates = repository.NewChatStates()
		logrus.Info("ChatStateRepository initialized")
	})
	return s.chatStates
}

// Content returns the texts of the fun and game commands.
func (s *ServiceProvider) Content() (*content.Content, error) {
	s.contentOnce.Do(func() {
		s.content, s.contentErr = content.Load()
	})
	if s.contentErr != nil {
		return nil, s.contentErr
	}
	return s.content, nil
}

// Metrics returns the Prometheus collectors.
func (s *ServiceProvider) Metrics() *metrics.Metrics {
	s.metricsOnce.Do(func() {
		s.metrics = metrics.NewMetrics()
		s.metrics.TrackChats(s.ChatStateRepository().Len)
	})
	return s.metrics
}

// BotAPI returns the Telegram Bot API instance.
func (s *ServiceProvider) BotAPI() (*tgbotapi.BotAPI, error) {
	s.botAPIOnce.Do(func() {
		s.botAPI, s.botAPIErr = tgbotapi.NewBotAPI(s.config.EnvBotToken)
		if s.botAPIErr != nil {
			logrus.Errorf("Failed to initialize BotAPI: %v", s.botAPIErr)
			s.botAPI = nil
		}
	})
	if s.botAPIErr != nil {
		return nil, fmt.Errorf("bot API not initialized: %w", s.botAPIErr)
	}
	return s.botAPI, nil
}

// services returns the clients of the enabled integrations.
func (s *ServiceProvider) services(caps models.CapabilitySet) (botServ.Services, error) {
	var services botServ.Services
	if caps.Has(models.CapabilityWeather) {
		services.Weather = s.WeatherService()
	}
	if caps.Has(models.CapabilityTranslation) {
		services.Translate = s.TranslateService()
	}
	if caps.Has(models.CapabilityDictionary) {
		services.Dictionary = s.DictionaryService()
	}
	if caps.Has(models.CapabilityGenerative) {
		model, err := s.GenerativeService()
		if err != nil {
			return services, err
		}
		services.Generative = model
	}
	return services, nil
}

// BotService returns the main bot service with every available handler group registered.
func (s *ServiceProvider) BotService() (*botServ.TgBotServices, error) {
	s.botServiceOnce.Do(func() {
		s.botServiceErr = s.initBotService()
	})
	if s.botServiceErr != nil {
		return nil, fmt.Errorf("bot service not initialized: %w", s.botServiceErr)
	}
	return s.botService, nil
}

func (s *ServiceProvider) initBotService() error {
	botAPI, err := s.BotAPI()
	if err != nil {
		return err
	}
	texts, err := s.Content()
	if err != nil {
		return err
	}
	caps := s.config.Capabilities()
	services, err := s.services(caps)
	if err != nil {
		return err
	}
	s.botService, err = botServ.NewTgBot(
		botAPI,
		botAPI.Self.UserName,
		s.ChatStateRepository(),
		services,
		texts,
		caps,
		s.Metrics(),
	)
	if err != nil {
		return err
	}
	logrus.WithField("commands", len(s.botService.Commands())).Info("BotService initialized")
	return nil
}

// Router returns the HTTP router serving the webhook.
func (s *ServiceProvider) Router() (chi.Router, error) {
	bot, err := s.BotService()
	if err != nil {
		return nil, err
	}
	s.routerOnce.Do(func() {
		s.router = botHand.NewRouter(bot, s.Metrics().Handler())
	})
	return s.router, nil
}
