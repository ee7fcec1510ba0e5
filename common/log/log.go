package log

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	logger = log.NewWithOptions(os.Stdout, log.Options{ReportTimestamp: true, TimeFormat: time.DateTime})
)

func InitLog(appName string, logLevel string) {
	// 使用 os.Stdout 而不是 os.Stderr，IDE 控制台不会整片标红
	l := log.New(os.Stdout)
	l.SetPrefix(appName)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)

	// 显示文件名和行号，跳过本包一层封装
	l.SetReportCaller(true)
	l.SetCallerOffset(1)
	l.SetLevel(ParseLevel(logLevel))

	mu.Lock()
	logger = l
	mu.Unlock()
}

// ParseLevel 默认为 info 级别
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetLevel 配置热更新时调整日志级别
func SetLevel(logLevel string) {
	current().SetLevel(ParseLevel(logLevel))
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		current().Fatal(format)
	} else {
		current().Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		current().Info(format)
	} else {
		current().Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		current().Warn(format)
	} else {
		current().Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		current().Error(format)
	} else {
		current().Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		current().Debug(format)
	} else {
		current().Debugf(format, args...)
	}
}
