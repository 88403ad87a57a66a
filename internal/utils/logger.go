package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// PushLogger writes timestamped log lines to both stdout and a per-tool
// log file. Every line carries a short run ID so the log files produced
// by the pipeline steps (extract, baidupush, bingpush) can be correlated.
type PushLogger struct {
	file    *os.File
	logger  *log.Logger
	runID   string
	verbose bool
}

func NewPushLogger(logPath string, verbose bool) (*PushLogger, error) {
	if dir := filepath.Dir(logPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	// Append so repeated pipeline runs accumulate in the same file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	multiWrite := io.MultiWriter(os.Stdout, file)
	logger := log.New(multiWrite, "", log.Ldate|log.Ltime|log.Lmicroseconds)

	return &PushLogger{
		file:    file,
		logger:  logger,
		runID:   uuid.NewString()[:8],
		verbose: verbose,
	}, nil
}

func (pl *PushLogger) LogInfo(format string, v ...interface{}) {
	pl.log("INFO", format, v...)
}

func (pl *PushLogger) LogError(format string, v ...interface{}) {
	pl.log("ERROR", format, v...)
}

// LogDebug is suppressed unless the logger was created with verbose set.
func (pl *PushLogger) LogDebug(format string, v ...interface{}) {
	if !pl.verbose {
		return
	}
	pl.log("DEBUG", format, v...)
}

func (pl *PushLogger) log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	pl.logger.Printf("[%s] [%s] %s", level, pl.runID, message)
}

func (pl *PushLogger) Close() error {
	return pl.file.Close()
}
