package api

import (
	"context"
	"errors"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
	"net/http"
	"net/url"
	"time"
)

// WeatherEndpoint is the OpenWeatherMap current weather API.
const WeatherEndpoint = "https://api.openweathermap.org/data/2.5/weather"

// weatherResponse is the subset of the OpenWeatherMap payload the bot reads.
type weatherResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// WeatherAPI fetches current weather from OpenWeatherMap.
type WeatherAPI struct {
	apiKey   string       // API key, requests are skipped when empty
	endpoint string       // API endpoint URL
	client   *http.Client // HTTP client
}

// NewWeatherAPI creates a weather client.
// Arguments:
//   - endpoint: API endpoint, WeatherEndpoint in production.
//   - apiKey: OpenWeatherMap key, may be empty.
//   - timeout: per request timeout, DefaultTimeout when zero.
//
// Returns a pointer to a WeatherAPI.
func NewWeatherAPI(endpoint, apiKey string, timeout time.Duration) *WeatherAPI {
	return &WeatherAPI{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   newHTTPClient(timeout),
	}
}

// Get returns the current metric weather of city, or nil when the key is
// missing or the request fails for any reason.
func (w *WeatherAPI) Get(ctx context.Context, city string) *models.Weather {
	if w.apiKey == "" {
		logrus.Warn("Weather API key is not configured, skipping weather request")
		return nil
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", w.apiKey)
	query.Set("units", "metric")
	query.Set("lang", "en")

	var response weatherResponse
	if err := getJSON(ctx, w.client, w.endpoint+"?"+query.Encode(), &response); err != nil {
		logrus.WithError(err).WithField("city", city).Error("Weather API request failed")
		return nil
	}
	if response.Main == nil || response.Wind == nil || len(response.Weather) == 0 {
		err := errors.New("incomplete weather payload")
		logrus.WithError(err).WithField("city", city).Error("Weather API request failed")
		return nil
	}

	return &models.Weather{
		Temperature: response.Main.Temp,
		Humidity:    response.Main.Humidity,
		Description: response.Weather[0].Description,
		WindSpeed:   response.Wind.Speed,
		City:        response.Name,
		Country:     response.Sys.Country,
	}
}
