package config

import (
	"os"
	"strings"
)

// Config holds the server's environment-driven settings. Everything has a
// default that works for local development.
type Config struct {
	Port          string
	AllowedOrigin string
	STUNServers   []string
	TURNURL       string
	TURNUsername  string
	TURNPassword  string
}

// Load reads configuration from environment variables.
func Load() *Config {
	stun := []string{
		"stun:stun.l.google.com:19302",
		"stun:stun1.l.google.com:19302",
	}
	if custom := os.Getenv("STUN_SERVERS"); custom != "" {
		stun = strings.Split(custom, ",")
	}

	return &Config{
		Port:          getEnvOrDefault("PORT", "3000"),
		AllowedOrigin: getEnvOrDefault("ALLOWED_ORIGIN", "*"),
		STUNServers:   stun,
		TURNURL:       os.Getenv("TURN_URL"),
		TURNUsername:  os.Getenv("TURN_USERNAME"),
		TURNPassword:  os.Getenv("TURN_PASSWORD"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
