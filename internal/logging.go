package internal

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LevelSet map[zapcore.Level]bool

func (ls LevelSet) Enabled(l zapcore.Level) bool {
	return ls[l]
}

var logLevels = LevelSet{zapcore.InfoLevel: true}

func SetAllowedLogLevels(levels ...zapcore.Level) {
	newLevels := make(LevelSet)
	for _, lvl := range levels {
		newLevels[lvl] = true
	}
	logLevels = newLevels
	InitLogger()
}

// InitLogger installs the global console logger used for operator-facing
// output.
func InitLogger() {
	zap.ReplaceGlobals(NewConsoleLogger(os.Stdout, os.Stderr, logLevels))
}

// NewConsoleLogger prints bare messages: the allowed levels below WARN go to
// stdout, WARN and above always go to stderr.
func NewConsoleLogger(stdout, stderr io.Writer, levels LevelSet) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:  "msg",
		EncodeLevel: zapcore.CapitalLevelEncoder,
		EncodeTime:  zapcore.ISO8601TimeEncoder,
	}

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	stdoutCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(stdout)), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l < zapcore.WarnLevel && levels.Enabled(l)
	}))

	stderrCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(stderr)), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	}))

	return zap.New(zapcore.NewTee(stdoutCore, stderrCore))
}
