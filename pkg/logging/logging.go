// Package logging 构建玩法核心和工具共用的 zerolog 日志器
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options 日志配置
type Options struct {
	// Verbose 为 false 时只输出 Warn 及以上级别
	Verbose bool
	// Writer 输出目标，nil 时为 stderr
	Writer io.Writer
	// Pretty 使用人类可读的控制台格式（桌面工具），否则输出 JSON
	Pretty bool
}

// New 根据配置创建日志器
func New(opts Options) zerolog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Component 派生带组件名的子日志器，对应日志中的 [Component] 前缀
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
