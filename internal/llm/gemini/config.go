package gemini

import (
	"os"
	"time"
)

// Config for the Gemini client. Exactly one backend is used: the Gemini API
// when an API key is set, Vertex AI otherwise.
type Config struct {
	Model          string // e.g. "gemini-2.5-flash"
	Project        string // Vertex AI project; if empty, falls back to env GOOGLE_CLOUD_PROJECT
	Location       string // Vertex AI location, default us-central1
	APIKey         string // if set, use the Gemini API backend
	Temperature    float32
	Timeout        time.Duration // per-call deadline around GenerateContent
	ValidateOutput bool          // re-validate the response against the schema locally
}

func (cfg Config) withDefaults() Config {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Project == "" {
		cfg.Project = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if cfg.Location == "" {
		cfg.Location = "us-central1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return cfg
}
