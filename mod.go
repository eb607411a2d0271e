// Package sable defines the runtime pieces shared by generated SDK clients:
// the serde engine under serde/ and the request pipeline under pipeline/.
//
// The root package only exposes the global logger so that every component
// reports through the same sink.
package sable

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// EnvLogLevel is the name of the environment variable to change the logging
// level.
const EnvLogLevel = "SABLE_LOG_LEVEL"

const defaultLevel = zerolog.ErrorLevel

func init() {
	switch os.Getenv(EnvLogLevel) {
	case "warn":
		Logger = Logger.Level(zerolog.WarnLevel)
	case "info":
		Logger = Logger.Level(zerolog.InfoLevel)
	case "debug":
		Logger = Logger.Level(zerolog.DebugLevel)
	case "trace":
		Logger = Logger.Level(zerolog.TraceLevel)
	}
}

var logout = zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance. By default, it only prints
// error level messages but it can be changed through the environment
// variable.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger().
	Level(defaultLevel)

// PromCollectors exposes the prometheus collectors of every package. The
// host application registers them on its own registry.
var PromCollectors []prometheus.Collector
