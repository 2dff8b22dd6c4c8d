package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

var levelColors = map[Level]string{
	DEBUG: "\033[36m", // Cyan
	INFO:  "\033[32m", // Green
	WARN:  "\033[33m", // Yellow
	ERROR: "\033[31m", // Red
	FATAL: "\033[35m", // Magenta
}

const colorReset = "\033[0m"

// Logger writes levelled messages to an io.Writer.
type Logger struct {
	mu          sync.Mutex
	level       Level
	output      io.Writer
	colorEnable bool
	exit        func(int)
}

// New creates a logger writing to w at the given level.
// Colors are enabled only when w is a terminal.
func New(w io.Writer, levelStr string) *Logger {
	return &Logger{
		level:       ParseLevel(levelStr),
		output:      w,
		colorEnable: isTerminal(w),
		exit:        os.Exit,
	}
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the default logger with the specified level.
// The default logger writes to stderr; stdout is left to command output.
func Init(levelStr string) {
	once.Do(func() {
		defaultLogger = New(os.Stderr, levelStr)
	})
}

// Default returns the package-level logger, initializing it at INFO.
func Default() *Logger {
	Init("info")
	return defaultLogger
}

// SetLevel sets the logging level for the default logger.
func SetLevel(levelStr string) {
	Default().SetLevel(levelStr)
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	Default().SetOutput(w)
}

// SetColorEnable enables or disables color output on the default logger.
func SetColorEnable(enable bool) {
	l := Default()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colorEnable = enable
}

// ParseLevel converts a string to a Level. Unknown names map to INFO.
func ParseLevel(levelStr string) Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

// SetLevel changes the minimum level written by l.
func (l *Logger) SetLevel(levelStr string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = ParseLevel(levelStr)
}

// SetOutput redirects l to w. Colors follow the new writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.colorEnable = isTerminal(w)
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	message := fmt.Sprintf(format, args...)
	levelName := levelNames[level]

	var output string
	if l.colorEnable {
		output = fmt.Sprintf("%s[%s]%s %s", levelColors[level], levelName, colorReset, message)
	} else {
		output = fmt.Sprintf("[%s] %s", levelName, message)
	}

	log.New(l.output, "", log.LstdFlags).Println(output)

	if level == FATAL && l.exit != nil {
		l.exit(1)
	}
}

// Debugf logs at DEBUG.
func (l *Logger) Debugf(format string, args ...interface{}) { l.log(DEBUG, format, args...) }

// Infof logs at INFO.
func (l *Logger) Infof(format string, args ...interface{}) { l.log(INFO, format, args...) }

// Warnf logs at WARN.
func (l *Logger) Warnf(format string, args ...interface{}) { l.log(WARN, format, args...) }

// Errorf logs at ERROR.
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(ERROR, format, args...) }

// Fatalf logs at FATAL and exits the program.
func (l *Logger) Fatalf(format string, args ...interface{}) { l.log(FATAL, format, args...) }

// Debug logs a debug message on the default logger.
func Debug(format string, args ...interface{}) {
	Default().log(DEBUG, format, args...)
}

// Info logs an info message on the default logger.
func Info(format string, args ...interface{}) {
	Default().log(INFO, format, args...)
}

// Warn logs a warning message on the default logger.
func Warn(format string, args ...interface{}) {
	Default().log(WARN, format, args...)
}

// Error logs an error message on the default logger.
func Error(format string, args ...interface{}) {
	Default().log(ERROR, format, args...)
}

// Fatal logs a fatal message and exits the program.
func Fatal(format string, args ...interface{}) {
	Default().log(FATAL, format, args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
