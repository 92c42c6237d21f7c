package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// ApplyEnvFiles reads dotenv-style files and applies recognized variables
// onto the Config. Unknown variables are ignored.
func (c *Config) ApplyEnvFiles(filenames ...string) error {
	vals, err := godotenv.Read(filenames...)
	if err != nil {
		return fmt.Errorf("read env file: %w", err)
	}
	c.applyEnv(vals)
	return nil
}

func (c *Config) applyEnv(vals map[string]string) {
	if v, ok := vals[EnvLogLevel]; ok {
		if lvl, ok := ParseLogLevel(v); ok {
			c.LogLvl = lvl
		}
	}
}
