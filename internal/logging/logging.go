// Package logging は charmbracelet/log を使ったロガーを生成します。
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"todoapp/backend/internal/config"
)

// New は設定に従ってロガーを作成します。出力先は標準エラーです。
func New(cfg config.LoggingConfig) *log.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter は出力先を指定してロガーを作成します。
func NewWithWriter(w io.Writer, cfg config.LoggingConfig) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(cfg.Level),
		Formatter:       ParseFormatter(cfg.Format),
		ReportTimestamp: true,
		Prefix:          "todoapp",
	})
}

// Discard はテスト用の何も出力しないロガーを返します。
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel は文字列のログレベルを変換します。不明な値は info です。
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter は文字列のフォーマット名を変換します。
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
