package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"

	"github.com/zombor/workout-csv/internal/parsing"
	"github.com/zombor/workout-csv/internal/scanning"
	"github.com/zombor/workout-csv/internal/scanning/tesseract"
)

// EnvVarPrefix is prepended to flag names to form environment variables,
// so --gemini-key is also read from WORKOUT_CSV_GEMINI_KEY.
const EnvVarPrefix = "WORKOUT_CSV"

// Recognizer engine names
const (
	EngineTesseract = "tesseract"
	EngineGemini    = "gemini"
	EngineOllama    = "ollama"
)

// Config holds the settings shared by every command
type Config struct {
	Recognizer     string
	TesseractLangs string
	GeminiKey      string
	GeminiModel    string
	OllamaURL      string
	OllamaModel    string
	CatalogPath    string
}

// RegisterFlags binds the shared settings to fs
func RegisterFlags(fs *ff.FlagSet) *Config {
	c := &Config{}
	fs.StringVar(&c.Recognizer, 0, "recognizer", EngineTesseract, "Text recognizer: 'tesseract', 'gemini' or 'ollama'")
	fs.StringVar(&c.TesseractLangs, 0, "tesseract-langs", "eng", "Comma-separated Tesseract languages")
	fs.StringVar(&c.GeminiKey, 0, "gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
	fs.StringVar(&c.GeminiModel, 0, "gemini-model", "gemini-2.5-flash", "Google Gemini model name")
	fs.StringVar(&c.OllamaURL, 0, "ollama-url", "http://localhost:11434", "Ollama API base URL")
	fs.StringVar(&c.OllamaModel, 0, "ollama-model", "qwen2.5vl", "Ollama vision model name")
	fs.StringVar(&c.CatalogPath, 0, "catalog", "", "YAML catalog overriding equipment, muscle groups, summaries and demo links")
	return c
}

// Parse parses args into fs, reading unset flags from WORKOUT_CSV_* variables
func Parse(fs *ff.FlagSet, args []string) error {
	return ff.Parse(fs, args, ff.WithEnvVarPrefix(EnvVarPrefix))
}

// NewRecognizer builds the configured recognition engine
func (c *Config) NewRecognizer(ctx context.Context) (scanning.Recognizer, error) {
	switch c.Recognizer {
	case EngineTesseract:
		langs := splitList(c.TesseractLangs)
		slog.Info("Initializing Tesseract recognizer...", "languages", langs)
		return tesseract.New(langs...), nil
	case EngineGemini:
		apiKey := c.GeminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("gemini API key is required: set --gemini-key or GEMINI_API_KEY")
		}
		slog.Info("Initializing Gemini recognizer...", "model", c.GeminiModel)
		g, err := scanning.NewGemini(ctx, apiKey, c.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("initializing gemini: %w", err)
		}
		return g, nil
	case EngineOllama:
		slog.Info("Initializing Ollama recognizer...", "url", c.OllamaURL, "model", c.OllamaModel)
		o, err := scanning.NewOllama(c.OllamaURL, c.OllamaModel)
		if err != nil {
			return nil, fmt.Errorf("initializing ollama: %w", err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("invalid recognizer %q: valid values are tesseract, gemini or ollama", c.Recognizer)
	}
}

// LoadCatalog returns the configured catalog, or the built-in one
func (c *Config) LoadCatalog() (*parsing.Catalog, error) {
	if c.CatalogPath == "" {
		return parsing.DefaultCatalog(), nil
	}
	catalog, err := parsing.LoadCatalog(c.CatalogPath)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded catalog", "path", c.CatalogPath)
	return catalog, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
