// Package content holds the static texts of the fun and game commands.
// They ship inside the binary as YAML.
package content

import (
	_ "embed"
	"fmt"
	"gopkg.in/yaml.v3"
	"strings"
)

//go:embed content.yaml
var defaultContent []byte

// QuizQuestion is a trivia question with its expected lowercase answer.
type QuizQuestion struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// ShopItem is an item listed by the shop command.
type ShopItem struct {
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
}

// Content is the set of random texts, quiz questions and shop items.
type Content struct {
	Compliments []string       `yaml:"compliments"`
	Jokes       []string       `yaml:"jokes"`
	Quotes      []string       `yaml:"quotes"`
	Roasts      []string       `yaml:"roasts"`
	Quiz        []QuizQuestion `yaml:"quiz"`
	Shop        []ShopItem     `yaml:"shop"`
}

// Load parses the embedded content.
func Load() (*Content, error) {
	return Parse(defaultContent)
}

// Parse decodes YAML content and normalizes quiz answers to lowercase.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	for i := range c.Quiz {
		if c.Quiz[i].Question == "" || c.Quiz[i].Answer == "" {
			return nil, fmt.Errorf("quiz question %d is incomplete", i+1)
		}
		c.Quiz[i].Answer = strings.ToLower(strings.TrimSpace(c.Quiz[i].Answer))
	}
	return &c, nil
}
