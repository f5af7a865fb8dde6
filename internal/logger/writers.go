package logger

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// flusher calls flush on every tick until stopped.
type flusher struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func startFlusher(interval time.Duration, flush func() error, logger *zap.Logger, path string) *flusher {
	f := &flusher{ticker: time.NewTicker(interval), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-f.ticker.C:
				if err := flush(); err != nil {
					logger.Error("Periodic flush failed", zap.String("file", path), zap.Error(err))
				}
			case <-f.done:
				return
			}
		}
	}()
	return f
}

func (f *flusher) stop() {
	f.once.Do(func() {
		f.ticker.Stop()
		close(f.done)
	})
}

// SafeFileWriter is a buffered append-only file that is safe for concurrent
// use and flushed on an interval.
type SafeFileWriter struct {
	mu      sync.Mutex
	writer  *bufio.Writer
	file    *os.File
	flusher *flusher
	logger  *zap.Logger
	path    string

	writtenLines uint64
	flushCount   uint64
}

// NewSafeFileWriter opens path for appending.
func NewSafeFileWriter(path string, flushInterval time.Duration, logger *zap.Logger) (*SafeFileWriter, error) {
	file, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	w := &SafeFileWriter{
		writer: bufio.NewWriter(file),
		file:   file,
		logger: logger,
		path:   path,
	}
	w.flusher = startFlusher(flushInterval, w.Flush, logger, path)
	return w, nil
}

func (w *SafeFileWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.writer.Write(data)
	if err != nil {
		return n, fmt.Errorf("failed to write data: %w", err)
	}
	w.writtenLines++
	return n, nil
}

// WriteLine writes line followed by a newline.
func (w *SafeFileWriter) WriteLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.writer.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	w.writtenLines++
	return nil
}

func (w *SafeFileWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	w.flushCount++
	return nil
}

func (w *SafeFileWriter) Close() error {
	w.flusher.stop()

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush on close: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	w.logger.Debug("File writer closed",
		zap.String("file", w.path),
		zap.Uint64("written_lines", w.writtenLines),
		zap.Uint64("flush_count", w.flushCount))
	return nil
}

func (w *SafeFileWriter) GetStats() (lines, flushes uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writtenLines, w.flushCount
}

// SafeCSVWriter appends records to a CSV file. The header is written only
// when the file is new.
type SafeCSVWriter struct {
	mu      sync.Mutex
	writer  *csv.Writer
	file    *os.File
	flusher *flusher
	logger  *zap.Logger
	path    string

	writtenRecords uint64
	flushCount     uint64
}

func NewSafeCSVWriter(path string, header []string, flushInterval time.Duration, logger *zap.Logger) (*SafeCSVWriter, error) {
	file, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	w := &SafeCSVWriter{
		writer: csv.NewWriter(file),
		file:   file,
		logger: logger,
		path:   path,
	}
	if stat.Size() == 0 && len(header) > 0 {
		if err := w.writer.Write(header); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		w.writer.Flush()
	}
	w.flusher = startFlusher(flushInterval, w.Flush, logger, path)
	return w, nil
}

func (w *SafeCSVWriter) WriteRecord(record []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.writtenRecords++
	return nil
}

func (w *SafeCSVWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	w.flushCount++
	return nil
}

func (w *SafeCSVWriter) Close() error {
	w.flusher.stop()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error on close: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	w.logger.Debug("CSV writer closed",
		zap.String("file", w.path),
		zap.Uint64("written_records", w.writtenRecords),
		zap.Uint64("flush_count", w.flushCount))
	return nil
}

func (w *SafeCSVWriter) GetStats() (records, flushes uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writtenRecords, w.flushCount
}
