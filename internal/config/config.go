package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Line   LineConfig
	Notion NotionConfig
	Agent  AgentConfig
}

type AppConfig struct {
	Port        string
	Environment string
	LogFilePath string
}

type LineConfig struct {
	ChannelAccessToken string
	ChannelSecret      string
}

type NotionConfig struct {
	Token      string
	DatabaseID string
}

type AgentConfig struct {
	AnthropicAPIKey string
	Model           string
	MaxTokens       int
	TavilyAPIKey    string
}

// Load reads configuration from the environment, with .env as a fallback for
// local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Port:        getEnv("PORT", "3000"),
			Environment: getEnv("APP_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/app.log"),
		},
		Line: LineConfig{
			ChannelAccessToken: getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
			ChannelSecret:      getEnv("LINE_CHANNEL_SECRET", ""),
		},
		Notion: NotionConfig{
			Token:      getEnv("NOTION_TOKEN", ""),
			DatabaseID: getEnv("NOTION_DATABASE_ID", ""),
		},
		Agent: AgentConfig{
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			Model:           getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			MaxTokens:       getEnvInt("ANTHROPIC_MAX_TOKENS", 1024),
			TavilyAPIKey:    getEnv("TAVILY_API_KEY", ""),
		},
	}
}

// Validate reports every missing required setting at once so a misconfigured
// deployment fails with the full list instead of one key at a time.
func (c *Config) Validate() error {
	required := map[string]string{
		"LINE_CHANNEL_ACCESS_TOKEN": c.Line.ChannelAccessToken,
		"LINE_CHANNEL_SECRET":       c.Line.ChannelSecret,
		"NOTION_TOKEN":              c.Notion.Token,
		"NOTION_DATABASE_ID":        c.Notion.DatabaseID,
		"ANTHROPIC_API_KEY":         c.Agent.AnthropicAPIKey,
		"TAVILY_API_KEY":            c.Agent.TavilyAPIKey,
	}

	var missing []string
	for key, value := range required {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
