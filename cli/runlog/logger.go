// Package runlog writes the run log of the tool into a rotated file.
package runlog

import (
	"sync"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerOpts describes the logger options.
type LoggerOpts struct {
	// Filename is the name of log file.
	Filename string
	// MaxSize is the maximum size in megabytes of the log file
	// before it gets rotated.
	MaxSize int
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int
	// MaxAge is the maximum number of days to retain old log files
	// based on the timestamp encoded in their filename.
	MaxAge int
}

// Logger is a log handler writing JSON entries to a rotated file.
// A Logger can be used simultaneously from multiple goroutines.
type Logger struct {
	mu sync.Mutex
	// handler encodes entries.
	handler log.Handler
	// ljLogger is an io.WriteCloser that writes to the specified filename.
	ljLogger *lumberjack.Logger
	// opts describes the parameters that were used to create the logger.
	opts LoggerOpts
}

// NewLogger creates a new object of Logger.
func NewLogger(opts LoggerOpts) *Logger {
	ljLogger := &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   false,
		LocalTime:  true,
	}
	return &Logger{handler: json.New(ljLogger), ljLogger: ljLogger, opts: opts}
}

// HandleLog implements log.Handler.
func (logger *Logger) HandleLog(entry *log.Entry) error {
	logger.mu.Lock()
	defer logger.mu.Unlock()
	return logger.handler.HandleLog(entry)
}

// Rotate causes Logger to close the existing log file and immediately create a
// new one.
func (logger *Logger) Rotate() error {
	return logger.ljLogger.Rotate()
}

// GetOpts returns the parameters that were used to create the logger.
func (logger *Logger) GetOpts() LoggerOpts {
	return logger.opts
}

// Close implements io.Closer, and closes the current logfile.
func (logger *Logger) Close() error {
	return logger.ljLogger.Close()
}

// Handler returns the console handler combined with the file logger. The console
// handler is returned as is if there is no file logger.
func Handler(console log.Handler, fileLogger *Logger) log.Handler {
	if fileLogger == nil {
		return console
	}
	return multi.New(console, fileLogger)
}
