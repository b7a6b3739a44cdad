package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"fstabkv/config"
)

// Init 根据配置初始化全局ZapLogger
// dev模式下日志额外输出到标准错误 其余模式只写滚动日志文件
func Init(cfg *config.LogConfig) error {
	if cfg == nil {
		cfg = &config.LogConfig{Mode: "dev", Level: "warn", Filename: "fstabkv.log"}
	}
	level := new(zapcore.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return err
	}
	writeSyncer := getLogWriter(cfg.Filename, cfg.MaxSize, cfg.MaxBackups, cfg.MaxAge)
	var core zapcore.Core
	if cfg.Mode == "dev" {
		consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		core = zapcore.NewTee(
			zapcore.NewCore(getEncoder(), writeSyncer, level),
			zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
		)
	} else {
		core = zapcore.NewCore(getEncoder(), writeSyncer, level)
	}
	lg := zap.New(core, zap.AddCaller())
	// 替换zap全局logger 之后直接zap.L()使用
	zap.ReplaceGlobals(lg)
	return nil
}

func getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeDuration = zapcore.SecondsDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func getLogWriter(filename string, maxSize, maxBackup, maxAge int) zapcore.WriteSyncer {
	lumberJackLogger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSize,
		MaxBackups: maxBackup,
		MaxAge:     maxAge,
	}
	return zapcore.AddSync(lumberJackLogger)
}
