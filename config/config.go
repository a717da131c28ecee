// Package config loads the tool's JSON configuration file.
package config

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/trmquang93/medium-writer-sub001/generator"
)

type Config struct {
	LLM        *LLMConfig    `json:"llm"`
	GitHub     *GitHubConfig `json:"github"`
	ServerAddr string        `json:"server_addr"`
}

type LLMConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url"`
}

type GitHubConfig struct {
	Token string `json:"token"`
}

// Load reads JSON config from disk. Sections are optional; callers that
// need one ask for it explicitly.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LLMSettings converts the llm section into generator settings.
func (c Config) LLMSettings() (generator.Settings, error) {
	if c.LLM == nil || c.LLM.Provider == "" || c.LLM.APIKey == "" {
		return generator.Settings{}, errors.New("config must include llm.provider, llm.model, and llm.api_key")
	}
	return generator.Settings{
		Provider: generator.Provider(c.LLM.Provider),
		Model:    c.LLM.Model,
		APIKey:   c.LLM.APIKey,
		BaseURL:  c.LLM.BaseURL,
	}, nil
}

// GitHubToken returns the configured token, or "" when the section is
// absent.
func (c Config) GitHubToken() string {
	if c.GitHub == nil {
		return ""
	}
	return c.GitHub.Token
}
