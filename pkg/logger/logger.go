package logger

import (
	"os"
)

type Logger interface {
	Info(msg string, values ...any)
	Warn(msg string, values ...any)
	Error(msg string, values ...any)
	Debug(msg string, values ...any)
	Panic(message string, values ...any)
	Fatal(error error, values ...any)
	Printf(format string, args ...interface{})
}

func init() {
	// A CLI process stays quiet unless SALDO_DEBUG is set; diagnostics go to
	// stderr so command output on stdout stays clean.
	_, err := NewLogger(defaultConfig(os.Getenv("SALDO_DEBUG") != ""))
	if err != nil {
		panic(err)
	}
}

// Init reconfigures the process-wide logger once config has been loaded.
func Init(debug bool) error {
	_, err := NewLogger(defaultConfig(debug))
	return err
}

func Info(msg string, values ...any) {
	GetLogger().Info(msg, values...)
}

func Warn(msg string, values ...any) {
	GetLogger().Warn(msg, values...)
}

func Error(msg string, values ...any) {
	GetLogger().Error(msg, values...)
}

func Debug(msg string, values ...any) {
	GetLogger().Debug(msg, values...)
}

func Panic(msg string, values ...any) {
	GetLogger().Panic(msg, values...)
}

func Fatal(error error, values ...any) {
	GetLogger().Fatal(error, values...)
}
