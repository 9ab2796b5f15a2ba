// Package logger provides structured logging for the LOD build
// pipeline (SPEC_FULL.md §2): zap for structured fields, lumberjack
// for file rotation, plus a handful of helpers tailored to the
// pipeline's own phases (partition, group, simplify, hierarchy) so
// call sites don't hand-assemble the same field set at every log
// line.
package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.Logger
var sugar *zap.SugaredLogger

// Callers that never invoke Init (library code, tests of packages
// that merely log incidentally) still get a safe no-op logger rather
// than a nil-pointer panic on first use.
func init() {
	log = zap.NewNop()
	sugar = log.Sugar()
}

// RotationConfig configures lumberjack's file rotation.
type RotationConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation returns sensible rotation settings for path.
func DefaultRotation(path string) RotationConfig {
	return RotationConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Init initializes the logger at the given level, with file output at
// logFile when non-empty.
func Init(level string, logFile string) error {
	if logFile != "" {
		return InitWithRotation(level, DefaultRotation(logFile), true)
	}
	return InitWithRotation(level, RotationConfig{}, true)
}

// InitWithRotation initializes the logger with explicit rotation
// settings. Set console to false to silence stdout output, which
// tests use to keep their own output clean.
func InitWithRotation(level string, rot RotationConfig, console bool) error {
	lvl := parseLevel(level)
	var cores []zapcore.Core

	if console {
		cores = append(cores, zapcore.NewCore(
			consoleEncoder(zapcore.TimeEncoderOfLayout("15:04:05"), zapcore.CapitalColorLevelEncoder),
			zapcore.AddSync(os.Stdout),
			lvl,
		))
	}

	if rot.Path != "" {
		writer := &lumberjack.Logger{
			Filename:   rot.Path,
			MaxSize:    rot.MaxSizeMB,
			MaxBackups: rot.MaxBackups,
			MaxAge:     rot.MaxAgeDays,
			Compress:   rot.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(
			consoleEncoder(zapcore.ISO8601TimeEncoder, zapcore.CapitalLevelEncoder),
			zapcore.AddSync(writer),
			lvl,
		))
	}

	log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	sugar = log.Sugar()
	return nil
}

func consoleEncoder(timeEnc zapcore.TimeEncoder, levelEnc zapcore.LevelEncoder) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	})
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes any buffered log entries.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }

// Info logs an info message.
func Info(msg string, fields ...zap.Field) { log.Info(msg, fields...) }

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) { log.Warn(msg, fields...) }

// Error logs an error message.
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

// Fatal logs a fatal message and exits.
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }

// Pipeline phase names, used as the "phase" field's value throughout
// the build (SPEC_FULL.md §2).
const (
	PhasePartition = "partition"
	PhaseGroup     = "group"
	PhaseSimplify  = "simplify"
	PhaseHierarchy = "hierarchy"
)

// PhaseTimer times one pipeline phase at one LOD level. A timed phase
// starts a timer on entry and calls Done on exit, giving every timed
// phase log line the same (phase, lod, triangle_count, cluster_count,
// duration_ms) shape. The hierarchy builder times its group and
// simplify phases; the partition phase is not timed.
type PhaseTimer struct {
	phase string
	lod   int
	start time.Time
}

// StartPhase begins timing phase at the given LOD level.
func StartPhase(phase string, lod int) *PhaseTimer {
	return &PhaseTimer{phase: phase, lod: lod, start: time.Now()}
}

// Done logs the phase's outcome at Info.
func (p *PhaseTimer) Done(triangleCount, clusterCount int) {
	Info("phase complete",
		zap.String("phase", p.phase),
		zap.Int("lod", p.lod),
		zap.Int("triangle_count", triangleCount),
		zap.Int("cluster_count", clusterCount),
		zap.Int64("duration_ms", time.Since(p.start).Milliseconds()))
}

// GuardRejected logs how many collapse guard rejections (flip,
// degenerate area, non-manifold) a phase produced at one LOD level.
// Zero rejections logs nothing.
func GuardRejected(phase string, lod, count int) {
	if count == 0 {
		return
	}
	Debug("guard rejected collapses",
		zap.String("phase", phase),
		zap.Int("lod", lod),
		zap.Int("count", count))
}

// Recovered logs a locally-handled failure kind (spec.md §7) at Warn:
// the pipeline treats these as recoverable rather than fatal, but
// they are still worth surfacing.
func Recovered(phase string, lod int, err error) {
	Warn("recovered from phase failure",
		zap.String("phase", phase),
		zap.Int("lod", lod),
		zap.Error(err))
}
