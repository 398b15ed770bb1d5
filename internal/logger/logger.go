package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu          sync.RWMutex
	out         io.Writer = os.Stderr
	infoLogger            = log.New(os.Stderr, "[INFO] ", log.Ldate|log.Ltime)
	errorLogger           = log.New(os.Stderr, "[ERROR] ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger           = log.New(io.Discard, "[DEBUG] ", log.Ldate|log.Ltime)
	logFile     *os.File
)

// Options controls where log lines go
type Options struct {
	// Dir, when set, receives a dated log file.
	Dir string
	// Quiet drops terminal output. The board uses it because it owns the screen.
	Quiet bool
	Debug bool
}

// Init configures the package loggers
func Init(opts Options) error {
	var writers []io.Writer
	if !opts.Quiet {
		writers = append(writers, os.Stderr)
	}

	var f *os.File
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create log dir: %w", err)
		}
		name := filepath.Join(opts.Dir, fmt.Sprintf("horizon_%s.log", time.Now().Format("2006-01-02")))
		var err error
		f, err = os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, f)
	}

	w := io.Discard
	if len(writers) > 0 {
		w = io.MultiWriter(writers...)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	out = w
	infoLogger = log.New(w, "[INFO] ", log.Ldate|log.Ltime)
	errorLogger = log.New(w, "[ERROR] ", log.Ldate|log.Ltime|log.Lshortfile)
	if opts.Debug {
		debugLogger = log.New(w, "[DEBUG] ", log.Ldate|log.Ltime)
	} else {
		debugLogger = log.New(io.Discard, "[DEBUG] ", log.Ldate|log.Ltime)
	}
	return nil
}

// SetOutput redirects every logger to w. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	infoLogger.SetOutput(w)
	errorLogger.SetOutput(w)
	debugLogger.SetOutput(w)
}

// Writer returns the current destination, for libraries that want an io.Writer
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

// Std returns a logger with the given prefix writing to the current destination
func Std(prefix string) *log.Logger {
	return log.New(Writer(), prefix, log.Ldate|log.Ltime)
}

func Info(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	infoLogger.Output(2, fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	errorLogger.Output(2, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	debugLogger.Output(2, fmt.Sprintf(format, v...))
}

// Close releases the log file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
