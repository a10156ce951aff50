package config

import "os"

type Config struct {
	ListenAddr      string
	BaseURL         string
	StoreBackend    string
	DBPath          string
	RedisAddr       string
	VisionBackend   string
	AnthropicAPIKey string
	AnthropicModel  string
	OllamaHost      string
	OllamaModel     string
	LogLevel        string
	LogFile         string
}

func Load() *Config {
	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		StoreBackend:    getEnv("STORE_BACKEND", "sqlite"),
		DBPath:          getEnv("DB_PATH", "/data/taptote.db"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		VisionBackend:   getEnv("VISION_BACKEND", "none"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "moondream"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
