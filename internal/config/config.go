package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderNone   LLMProvider = "none"
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// HTTP API
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ClientIdleTTL   time.Duration `env:"CLIENT_IDLE_TTL" envDefault:"1h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Telegram front-end (cmd/bot only)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	MessageParseMode string `env:"MESSAGE_PARSE_MODE" envDefault:"HTML"`

	// Generation collaborator. "none" keeps the responder on the knowledge base only.
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"none"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH" envDefault:"prompts/system_prompt.txt"`

	// Storage
	StoreFilePath string `env:"STORE_FILE_PATH" envDefault:"data/store.json"`
	LogFilePath   string `env:"LOG_FILE_PATH" envDefault:"logs/quantum-coin.log"`
	LogJSON       bool   `env:"LOG_JSON" envDefault:"false"`

	// Wallet handshake simulation
	HandshakeMinDelay   time.Duration `env:"HANDSHAKE_MIN_DELAY" envDefault:"300ms"`
	HandshakeMaxDelay   time.Duration `env:"HANDSHAKE_MAX_DELAY" envDefault:"1500ms"`
	HandshakeTimeout    time.Duration `env:"HANDSHAKE_TIMEOUT" envDefault:"5s"`
	HandshakeFailRate   float64       `env:"HANDSHAKE_FAIL_RATE" envDefault:"0.2"`
	RandomSeed          uint64        `env:"RANDOM_SEED"`
	PriceCacheTTL       time.Duration `env:"PRICE_CACHE_TTL" envDefault:"30s"`
	AnalysisSchedule    string        `env:"ANALYSIS_SCHEDULE" envDefault:"@every 2m"`
	AnalysisNeuralStart bool          `env:"ANALYSIS_NEURAL" envDefault:"true"`
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// Parse reads the configuration from the environment without exiting on error.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
