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

// TranslateEndpoint is the MyMemory translation API.
const TranslateEndpoint = "https://api.mymemory.translated.net/get"

// AutoLanguage asks the provider to detect the source language.
const AutoLanguage = "auto"

// translateResponse contains the response from the MyMemory API.
type translateResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// TranslateAPI translates text with the MyMemory API.
type TranslateAPI struct {
	apiKey   string       // optional key, raises the free quota
	endpoint string       // API endpoint URL
	client   *http.Client // HTTP client
}

// NewTranslateAPI creates a translation client.
// Arguments:
//   - endpoint: API endpoint, TranslateEndpoint in production.
//   - apiKey: optional MyMemory key.
//   - timeout: per request timeout, DefaultTimeout when zero.
//
// Returns a pointer to a TranslateAPI.
func NewTranslateAPI(endpoint, apiKey string, timeout time.Duration) *TranslateAPI {
	return &TranslateAPI{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   newHTTPClient(timeout),
	}
}

// Translate translates text into targetLang. An empty sourceLang means AutoLanguage.
// Returns nil when the request fails or the provider returns no text.
func (t *TranslateAPI) Translate(ctx context.Context, text, targetLang, sourceLang string) *models.Translation {
	if sourceLang == "" {
		sourceLang = AutoLanguage
	}

	query := url.Values{}
	query.Set("q", text)
	query.Set("langpair", sourceLang+"|"+targetLang)
	if t.apiKey != "" {
		query.Set("key", t.apiKey)
	}

	var response translateResponse
	if err := getJSON(ctx, t.client, t.endpoint+"?"+query.Encode(), &response); err != nil {
		logrus.WithError(err).Error("Translation API request failed")
		return nil
	}
	if response.ResponseData.TranslatedText == "" {
		logrus.WithError(errors.New("empty translation")).Error("Translation API request failed")
		return nil
	}

	logrus.Debugf("Translated text from %s to %s", sourceLang, targetLang)
	return &models.Translation{
		Translated: response.ResponseData.TranslatedText,
		Original:   text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	}
}
