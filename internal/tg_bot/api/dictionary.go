package api

import (
	"context"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DictionaryEndpoint is the base of the free dictionaryapi.dev API.
const DictionaryEndpoint = "https://api.dictionaryapi.dev/api/v2/entries"

// dictionaryEntry is one element of the dictionaryapi.dev response array.
type dictionaryEntry struct {
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// DictionaryAPI looks up word definitions.
type DictionaryAPI struct {
	apiKey   string // unused by dictionaryapi.dev, kept for keyed mirrors
	endpoint string
	client   *http.Client
}

// NewDictionaryAPI creates a dictionary client.
func NewDictionaryAPI(endpoint, apiKey string, timeout time.Duration) *DictionaryAPI {
	return &DictionaryAPI{
		apiKey:   apiKey,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   newHTTPClient(timeout),
	}
}

// Define returns every definition of word in language ("en" when empty),
// or nil when the lookup fails.
func (d *DictionaryAPI) Define(ctx context.Context, word, language string) *models.DictionaryEntry {
	if language == "" {
		language = "en"
	}
	reqURL := d.endpoint + "/" + url.PathEscape(language) + "/" + url.PathEscape(word)
	if d.apiKey != "" {
		reqURL += "?" + url.Values{"key": {d.apiKey}}.Encode()
	}

	var response []dictionaryEntry
	if err := getJSON(ctx, d.client, reqURL, &response); err != nil {
		logrus.WithError(err).WithField("word", word).Error("Dictionary API request failed")
		return nil
	}
	if len(response) == 0 {
		logrus.WithField("word", word).Error("Dictionary API returned no entries")
		return nil
	}

	entry := &models.DictionaryEntry{Word: word, Language: language}
	for _, meaning := range response[0].Meanings {
		for _, def := range meaning.Definitions {
			entry.Definitions = append(entry.Definitions, models.Definition{
				PartOfSpeech: meaning.PartOfSpeech,
				Definition:   def.Definition,
				Example:      def.Example,
			})
		}
	}
	return entry
}
