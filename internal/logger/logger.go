// Package logger 是以 op/go-logging 為底的全域分級 logger
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

const (
	module     = "review-hub"
	timeFormat = "2006/01/02 15:04:05"
)

var (
	mu     sync.RWMutex
	logger *logging.Logger
)

func init() {
	Init("info", os.Stderr)
}

// Init 重新設定輸出與等級；無法辨識的等級視為 INFO，並回傳實際採用的等級
func Init(level string, w io.Writer) logging.Level {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}

	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend,
		logging.MustStringFormatter(`%{time:`+timeFormat+`} %{level:.4s} %{message}`))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, module)

	l := logging.MustGetLogger(module)
	l.ExtraCalldepth = 1
	l.SetBackend(leveled)

	mu.Lock()
	logger = l
	mu.Unlock()
	return lvl
}

func get() *logging.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug(args ...any)                   { get().Debug(args...) }
func Debugf(format string, args ...any)   { get().Debugf(format, args...) }
func Info(args ...any)                    { get().Info(args...) }
func Infof(format string, args ...any)    { get().Infof(format, args...) }
func Warning(args ...any)                 { get().Warning(args...) }
func Warningf(format string, args ...any) { get().Warningf(format, args...) }
func Error(args ...any)                   { get().Error(args...) }
func Errorf(format string, args ...any)   { get().Errorf(format, args...) }
