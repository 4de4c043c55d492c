package agent

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kardolus/taskpilot/internal"
)

const (
	debugLogMaxSizeMB  = 10
	debugLogMaxBackups = 3
	debugLogMaxAgeDays = 14
)

type Logs struct {
	Dir       string
	HumanPath string
	DebugPath string

	HumanLogger *zap.SugaredLogger
	DebugLogger *zap.SugaredLogger

	HumanZap *zap.Logger
	DebugZap *zap.Logger

	humanFile *os.File
	debugSink *lumberjack.Logger
}

func (l *Logs) Close() {
	// best-effort; ignore errors
	if l.HumanZap != nil {
		_ = l.HumanZap.Sync()
	}
	if l.DebugZap != nil {
		_ = l.DebugZap.Sync()
	}
	if l.humanFile != nil {
		_ = l.humanFile.Close()
	}
	if l.debugSink != nil {
		_ = l.debugSink.Close()
	}
}

// NewLogs opens the transcript and debug logs in dir, or in the agent
// directory under the cache home when dir is empty.
func NewLogs(dir string) (*Logs, error) {
	if dir == "" {
		logHome, err := internal.GetLogHome()
		if err != nil {
			return nil, err
		}
		dir = logHome
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	// transcript: human-readable, one run per file
	// debug: JSONL, rotated across runs
	humanPath := filepath.Join(dir, "agent.transcript.log")
	debugPath := filepath.Join(dir, "agent.debug.jsonl")

	humanFile, err := os.OpenFile(humanPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	humanZap := newZap(zapcore.AddSync(humanFile), zapcore.InfoLevel, false)

	debugSink := &lumberjack.Logger{
		Filename:   debugPath,
		MaxSize:    debugLogMaxSizeMB,
		MaxBackups: debugLogMaxBackups,
		MaxAge:     debugLogMaxAgeDays,
		Compress:   true,
	}
	debugZap := newZap(zapcore.AddSync(debugSink), zapcore.DebugLevel, true)

	return &Logs{
		Dir:         dir,
		HumanPath:   humanPath,
		DebugPath:   debugPath,
		HumanLogger: humanZap.Sugar(),
		DebugLogger: debugZap.Sugar(),
		HumanZap:    humanZap,
		DebugZap:    debugZap,
		humanFile:   humanFile,
		debugSink:   debugSink,
	}, nil
}

func newZap(ws zapcore.WriteSyncer, level zapcore.Level, json bool) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if json {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	return zap.New(zapcore.NewCore(enc, ws, level))
}
