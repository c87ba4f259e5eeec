// Package logging builds the slog loggers used across tunable.
//
// Library packages never create loggers on their own; they accept a
// *slog.Logger through options and fall back to a discarding logger. The CLI
// builds the real logger once from flags:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel(viper.GetString("log-level")),
//	    Format: logging.ParseFormat(viper.GetString("log-format")),
//	})
//
// Text output is colorized when the destination is a terminal.
package logging
