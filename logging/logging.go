// Package logging configures apex/log for progress output on stdout.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

// EnvLevel names the variable holding the log level.
const EnvLevel = "CICD_LOG"

// Init installs the cli handler on stdout with the level taken from CICD_LOG.
func Init() {
	InitWriter(os.Stdout, os.Getenv(EnvLevel))
}

// InitWriter installs the cli handler on w at the given level.
func InitWriter(w io.Writer, level string) {
	log.SetHandler(cli.New(w))
	log.SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to an apex level. Unknown or empty names fall
// back to info.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}
