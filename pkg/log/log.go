package log

import (
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// Setup .
func Setup(level, file string) error {
	if err := setupLevel(level); err != nil {
		return errors.Wrap(err, "setup log level")
	}
	return setupOutput(file)
}

func setupLevel(level string) error {
	if len(level) < 1 {
		return nil
	}

	var lv, err = zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, level)
	}

	logger = logger.Level(lv)

	return nil
}

func setupOutput(file string) error {
	if len(file) < 1 {
		return nil
	}

	var f, err = os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_RDWR, os.ModePerm)
	if err != nil {
		return errors.Wrap(err, file)
	}

	logger = zerolog.New(f).With().Timestamp().Logger().Level(logger.GetLevel())

	return nil
}

// WarnStack .
func WarnStack(err error) {
	Warnf("%+v", err)
}

// ErrorStackf .
func ErrorStackf(err error, format string, args ...any) {
	ErrorStack(errors.Wrapf(err, format, args...))
}

// ErrorStack .
func ErrorStack(err error) {
	Errorf("%+v", err)
}

// Debugf .
func Debugf(format string, args ...any) {
	logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// Infof .
func Infof(format string, args ...any) {
	logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Warnf .
func Warnf(format string, args ...any) {
	logger.Warn().Msg(fmt.Sprintf(format, args...))
}

// Errorf .
func Errorf(format string, args ...any) {
	logger.Error().Msg(fmt.Sprintf(format, args...))
}

// Fatalf .
func Fatalf(format string, args ...any) {
	logger.Fatal().Msg(fmt.Sprintf(format, args...))
}
