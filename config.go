package quartz

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

// WorldConfig is loaded from the environment. Field names map to env variables
// in snake case (RedisAddress -> REDIS_ADDRESS).
type WorldConfig struct {
	RedisAddress  string
	RedisPassword string
	LogLevel      string `config:"QUARTZ_LOG_LEVEL"`
	LogPretty     bool   `config:"QUARTZ_LOG_PRETTY"`
}

func defaultWorldConfig() WorldConfig {
	return WorldConfig{
		RedisAddress:  "localhost:6379",
		RedisPassword: "",
		LogLevel:      "info",
		LogPretty:     false,
	}
}

// GetWorldConfig returns the world configuration with defaults applied and any
// matching environment variables layered on top.
func GetWorldConfig() (WorldConfig, error) {
	cfg := defaultWorldConfig()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load world config from environment")
	}
	return cfg, nil
}
