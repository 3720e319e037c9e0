package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the run logger: timestamped console lines on stdout, mirrored
// to a rotating log file when one is configured.
func New(logfile string, debug bool) *zap.SugaredLogger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	}

	if logfile != "" {
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logfile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		})

		cores = append(cores, zapcore.NewCore(encoder, file, level))
	}

	return zap.New(zapcore.NewTee(cores...)).Sugar()
}
