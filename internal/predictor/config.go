package predictor

// Config holds the Ollama connection settings.
type Config struct {
	Enabled     bool
	Endpoint    string
	Model       string
	TimeoutMs   int
	MaxRetries  int
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns a disabled predictor pointed at a local Ollama.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		Endpoint:    "http://localhost:11434",
		Model:       "llama3.2",
		TimeoutMs:   10000,
		MaxRetries:  1,
		Temperature: 0.2,
		MaxTokens:   512,
	}
}
