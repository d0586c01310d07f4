package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Logger struct to hold leveled loggers and configuration
type Logger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	output      io.Writer
	level       LogLevel
	mutex       sync.Mutex
}

// LogLevel defines the logging levels
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	ERROR
)

// Global logger instance
var GlobalLogger *Logger
var once sync.Once

// ParseLevel maps a config string onto a LogLevel, defaulting to INFO.
func ParseLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// New builds a standalone logger. Batch tools and tests use it when they
// need output that is not shared with the process-wide logger.
func New(output io.Writer, level string) *Logger {
	if output == nil {
		output = os.Stdout
	}
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &Logger{
		infoLogger:  log.New(output, color.GreenString("INFO: "), flags),
		errorLogger: log.New(output, color.RedString("ERROR: "), flags),
		debugLogger: log.New(output, color.BlueString("DEBUG: "), flags),
		output:      output,
		level:       ParseLevel(level),
	}
}

// InitLogger initializes the global logger with the specified output and log level
func InitLogger(output io.Writer, level string) {
	once.Do(func() {
		GlobalLogger = New(output, level)
	})
}

// L returns the global logger, initialising it with INFO on stdout when
// nothing has called InitLogger yet.
func L() *Logger {
	InitLogger(os.Stdout, "INFO")
	return GlobalLogger
}

// Level reports the configured threshold.
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) emit(threshold LogLevel, target *log.Logger, line string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.level <= threshold {
		// Depth 3 reports the caller of Printf/Errorf/Debugf.
		_ = target.Output(3, line)
	}
}

func (l *Logger) Println(v ...interface{}) {
	l.emit(INFO, l.infoLogger, fmt.Sprintln(v...))
}

func (l *Logger) Printf(format string, v ...interface{}) {
	l.emit(INFO, l.infoLogger, fmt.Sprintf(format, v...))
}

func (l *Logger) Error(v ...interface{}) {
	l.emit(ERROR, l.errorLogger, fmt.Sprintln(v...))
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.emit(ERROR, l.errorLogger, fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(v ...interface{}) {
	l.emit(DEBUG, l.debugLogger, fmt.Sprintln(v...))
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.emit(DEBUG, l.debugLogger, fmt.Sprintf(format, v...))
}

// Fatalf logs at ERROR regardless of level and exits.
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.mutex.Lock()
	_ = l.errorLogger.Output(2, fmt.Sprintf(format, v...))
	l.mutex.Unlock()
	os.Exit(1)
}
