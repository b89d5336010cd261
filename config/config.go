package config

import (
	"os"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"

	DefaultCatalogBaseURL = "http://localhost:8080"
	DefaultLLMBaseURL     = "https://router.huggingface.co/v1"
	DefaultPort           = "8000"

	// MaxCatalogTimeout bounds the catalog fetch so an outage cannot stall chat.
	MaxCatalogTimeout = 3 * time.Second
)

// Config is built once at startup and passed by value; nothing mutates it.
type Config struct {
	CatalogBaseURL string
	CatalogTimeout time.Duration

	LLMProvider string
	LLMModel    string
	LLMBaseURL  string
	HFToken     string
	GeminiKey   string

	Port        string
	CORSOrigins []string
	Debug       bool
}

// Load reads a local .env file when present and then the process environment.
// Real environment variables win over .env entries.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// A missing .env is the normal deployed case.
	_ = gotenv.Load(envFiles...)

	return Config{
		CatalogBaseURL: strings.TrimRight(getenv("API_GATEWAY_URL", DefaultCatalogBaseURL), "/"),
		CatalogTimeout: parseTimeout(os.Getenv("CATALOG_TIMEOUT")),
		LLMProvider:    strings.ToLower(getenv("LLM_PROVIDER", ProviderHuggingFace)),
		LLMModel:       strings.TrimSpace(os.Getenv("LLM_MODEL")),
		LLMBaseURL:     getenv("LLM_BASE_URL", DefaultLLMBaseURL),
		HFToken:        strings.TrimSpace(os.Getenv("HF_TOKEN")),
		GeminiKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Port:           getenv("PORT", DefaultPort),
		CORSOrigins:    splitList(getenv("CORS_ALLOW_ORIGINS", "*")),
		Debug:          os.Getenv("DEBUG") == "true",
	}
}

// CatalogURL is the full course listing endpoint.
func (c Config) CatalogURL() string {
	return c.CatalogBaseURL + "/api/courses"
}

// Credential returns the API credential for the selected provider.
func (c Config) Credential() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiKey
	}
	return c.HFToken
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseTimeout(raw string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 || d > MaxCatalogTimeout {
		return MaxCatalogTimeout
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
