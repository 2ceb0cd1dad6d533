package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// parseEnv overlays the variables named in the Config env tags. A .env file
// in the working directory, if present, is loaded first; variables already
// set in the process environment win over it. Unset variables leave the
// current values alone. Malformed values panic.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(err)
	}
}
