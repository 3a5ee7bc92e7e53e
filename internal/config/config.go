package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

// Text-generation providers.
const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

const (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
	DefaultPort        = "8080"
)

// Config holds the configuration for the application.
type Config struct {
	DataDir     string
	Store       string
	DBPath      string
	ExportDir   string
	FlushOnExit bool

	AIProvider   string
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
	GroqModel    string

	GhostURL      string
	GhostAdminKey string

	// Telegram Config
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
	Port                string
}

// fileConfig is the optional YAML config file. Secrets are read from the environment only.
type fileConfig struct {
	DataDir     string `yaml:"data_dir"`
	Store       string `yaml:"store"`
	DBPath      string `yaml:"db_path"`
	ExportDir   string `yaml:"export_dir"`
	FlushOnExit *bool  `yaml:"flush_on_exit"`
	AIProvider  string `yaml:"ai_provider"`
	GeminiModel string `yaml:"gemini_model"`
	GroqModel   string `yaml:"groq_model"`
	GhostURL    string `yaml:"ghost_url"`
	Port        string `yaml:"port"`
}

// values maps the file settings onto the environment variable names they default.
func (f fileConfig) values() map[string]string {
	out := map[string]string{
		"JOURNAL_DATA_DIR":    f.DataDir,
		"JOURNAL_STORE":       f.Store,
		"JOURNAL_DB_PATH":     f.DBPath,
		"JOURNAL_EXPORT_DIR":  f.ExportDir,
		"JOURNAL_AI_PROVIDER": f.AIProvider,
		"GEMINI_MODEL":        f.GeminiModel,
		"GROQ_MODEL":          f.GroqModel,
		"GHOST_API_URL":       f.GhostURL,
		"PORT":                f.Port,
	}
	if f.FlushOnExit != nil {
		out["JOURNAL_FLUSH_ON_EXIT"] = strconv.FormatBool(*f.FlushOnExit)
	}
	return out
}

// DefaultDataDir is ~/.dev-journal, or .dev-journal when there is no home directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".dev-journal")
}

// configFilePath is JOURNAL_CONFIG, else config.yaml inside JOURNAL_DATA_DIR or the default data dir.
func configFilePath() string {
	if p := os.Getenv("JOURNAL_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("JOURNAL_DATA_DIR")
	if dir == "" {
		dir = DefaultDataDir()
	}
	return filepath.Join(dir, "config.yaml")
}

func loadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc.values(), nil
}

// NewFromEnv creates a new Config object from environment variables, falling back to
// the optional YAML config file and then to defaults. Only the key of an explicitly
// selected provider is required.
func NewFromEnv() (*Config, error) {
	file, err := loadFile(configFilePath())
	if err != nil {
		return nil, err
	}
	get := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return file[key]
	}
	getOr := func(key, def string) string {
		if v := get(key); v != "" {
			return v
		}
		return def
	}

	dataDir := getOr("JOURNAL_DATA_DIR", DefaultDataDir())

	store := strings.ToLower(getOr("JOURNAL_STORE", StoreSQLite))
	if store != StoreSQLite && store != StoreFile {
		return nil, fmt.Errorf("JOURNAL_STORE must be %q or %q, got %q", StoreSQLite, StoreFile, store)
	}

	flushOnExit := false
	if v := get("JOURNAL_FLUSH_ON_EXIT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("JOURNAL_FLUSH_ON_EXIT is not a boolean: %q", v)
		}
		flushOnExit = b
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	groqAPIKey := os.Getenv("GROQ_API_KEY")

	provider := strings.ToLower(get("JOURNAL_AI_PROVIDER"))
	switch provider {
	case "":
		// Pick whichever key is present, Gemini first.
		switch {
		case geminiAPIKey != "":
			provider = ProviderGemini
		case groqAPIKey != "":
			provider = ProviderGroq
		default:
			provider = ProviderNone
		}
	case ProviderGemini:
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case ProviderGroq:
		if groqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	case ProviderNone:
	default:
		return nil, fmt.Errorf("JOURNAL_AI_PROVIDER must be gemini, groq or none, got %q", provider)
	}

	// Telegram Config (Optional for CLI, required for Bot)
	var telegramAllowUserID int64
	if s := os.Getenv("TELEGRAM_ALLOW_USER_ID"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ALLOW_USER_ID is not a number: %q", s)
		}
		telegramAllowUserID = id
	}

	return &Config{
		DataDir:             dataDir,
		Store:               store,
		DBPath:              getOr("JOURNAL_DB_PATH", filepath.Join(dataDir, "journal.db")),
		ExportDir:           getOr("JOURNAL_EXPORT_DIR", filepath.Join(dataDir, "exports")),
		FlushOnExit:         flushOnExit,
		AIProvider:          provider,
		GeminiAPIKey:        geminiAPIKey,
		GeminiModel:         getOr("GEMINI_MODEL", DefaultGeminiModel),
		GroqAPIKey:          groqAPIKey,
		GroqModel:           getOr("GROQ_MODEL", DefaultGroqModel),
		GhostURL:            get("GHOST_API_URL"),
		GhostAdminKey:       os.Getenv("GHOST_ADMIN_API_KEY"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:  os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowUserID: telegramAllowUserID,
		Port:                getOr("PORT", DefaultPort),
	}, nil
}

// RequireGhost reports the first missing Ghost setting.
func (c *Config) RequireGhost() error {
	if c.GhostURL == "" {
		return fmt.Errorf("GHOST_API_URL environment variable not set")
	}
	if c.GhostAdminKey == "" {
		return fmt.Errorf("GHOST_ADMIN_API_KEY environment variable not set")
	}
	return nil
}

// RequireTelegram reports the first missing bot setting.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramAllowUserID == 0 {
		return fmt.Errorf("TELEGRAM_ALLOW_USER_ID environment variable not set")
	}
	return nil
}
