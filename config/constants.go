package config

import (
	"strings"

	"github.com/quarkos-dev/quark/internal/util"
)

// DefaultNamespace is the namespace built when none are configured.
const DefaultNamespace = "system"

// EnvLogLevel is the dotenv variable overriding the log level.
const EnvLogLevel = "QUARKD_LOG_LEVEL"

// ParseLogLevel maps a level name to its LogLevel; ok is false for unknown
// names.
func ParseLogLevel(s string) (util.LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return util.TraceLevel, true
	case "debug":
		return util.DebugLevel, true
	case "info":
		return util.InfoLevel, true
	case "warn", "warning":
		return util.WarnLevel, true
	case "error":
		return util.ErrorLevel, true
	default:
		return util.InfoLevel, false
	}
}
