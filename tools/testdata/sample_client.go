package yatranslate

// Sample Go client code for testing AST analysis
// This file simulates the yatranslate-go library's Client methods

import (
	"context"
)

// Client represents the Yandex Translate API client
type Client struct {
	apiKey string
}

// Langs is the language list
type Langs struct {
	Dirs []string
}

// GetLangs retrieves supported directions
func (c *Client) GetLangs(update bool) (*Langs, error) {
	return &Langs{Dirs: []string{"en-ru"}}, nil
}

// GetLangsWithContext retrieves supported directions with context
func (c *Client) GetLangsWithContext(ctx context.Context, update bool) (*Langs, error) {
	return &Langs{Dirs: []string{"en-ru"}}, nil
}

// Translate translates text
func (c *Client) Translate(text, lang string) ([]string, error) {
	return []string{"translated"}, nil
}

// helper is unexported and must be ignored
func (c *Client) helper() {}

// Describe has a value receiver on another type and must be ignored
func (l Langs) Describe() string { return "" }
