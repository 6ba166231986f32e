package models

// Weather is the normalized current weather for a city.
type Weather struct {
	Temperature float64 // °C
	Humidity    float64 // %
	Description string
	WindSpeed   float64 // m/s
	City        string
	Country     string
}

// Translation is the result of a single translation request.
type Translation struct {
	Translated string
	Original   string
	SourceLang string
	TargetLang string
}

// Definition is one sense of a dictionary word.
type Definition struct {
	PartOfSpeech string
	Definition   string
	Example      string // optional
}

// DictionaryEntry groups every definition returned for a word.
type DictionaryEntry struct {
	Word        string
	Language    string
	Definitions []Definition
}
