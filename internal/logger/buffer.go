package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// LogEntry is one structured log line held by the buffer.
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// LogBuffer keeps the most recent entries in memory for the Logs screen.
// Entries pushed out of the ring are appended to a spill file.
type LogBuffer struct {
	mu           sync.Mutex
	ring         []LogEntry
	maxSize      int
	currentIndex int
	wrapped      bool
	spill        *SafeFileWriter
	logger       *zap.Logger

	totalEntries   uint64
	spilledEntries uint64
}

// NewLogBuffer creates a buffer holding maxSize entries.
func NewLogBuffer(maxSize int, spillFilePath string, logger *zap.Logger) (*LogBuffer, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("log buffer size must be positive, got %d", maxSize)
	}
	spill, err := NewSafeFileWriter(spillFilePath, 5*time.Second, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open spill file: %w", err)
	}
	return &LogBuffer{
		ring:    make([]LogEntry, maxSize),
		maxSize: maxSize,
		spill:   spill,
		logger:  logger,
	}, nil
}

// Write accepts JSON lines produced by a zap JSON encoder, so the buffer can
// sit behind zapcore.AddSync.
func (lb *LogBuffer) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(p, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var raw map[string]interface{}
		if err := json.Unmarshal(line, &raw); err != nil {
			if err := lb.Add("info", string(line), nil); err != nil {
				return 0, err
			}
			continue
		}
		level, _ := raw["level"].(string)
		msg, _ := raw["msg"].(string)
		ts := time.Now()
		if s, ok := raw["time"].(string); ok {
			if parsed, err := time.Parse("2006-01-02T15:04:05.000Z0700", s); err == nil {
				ts = parsed
			}
		}
		delete(raw, "level")
		delete(raw, "msg")
		delete(raw, "time")
		if len(raw) == 0 {
			raw = nil
		}
		if err := lb.add(LogEntry{Timestamp: ts, Level: level, Message: msg, Fields: raw}); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Add appends an entry stamped with the current time.
func (lb *LogBuffer) Add(level, message string, fields map[string]interface{}) error {
	return lb.add(LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    fields,
	})
}

func (lb *LogBuffer) add(entry LogEntry) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if lb.wrapped {
		if err := lb.spillEntry(lb.ring[lb.currentIndex]); err != nil {
			lb.logger.Error("Failed to spill log entry", zap.Error(err))
			return err
		}
		lb.spilledEntries++
	}

	lb.ring[lb.currentIndex] = entry
	lb.currentIndex = (lb.currentIndex + 1) % lb.maxSize
	if lb.currentIndex == 0 {
		lb.wrapped = true
	}
	lb.totalEntries++
	return nil
}

func (lb *LogBuffer) spillEntry(entry LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}
	return lb.spill.WriteLine(string(data))
}

// GetRecentLogs returns up to limit of the newest entries, oldest first.
// A limit of zero returns everything held in memory.
func (lb *LogBuffer) GetRecentLogs(limit int) []LogEntry {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	count := lb.currentIndex
	start := 0
	if lb.wrapped {
		count = lb.maxSize
		start = lb.currentIndex
	}
	if limit > 0 && limit < count {
		start += count - limit
		count = limit
	}

	logs := make([]LogEntry, 0, count)
	for i := 0; i < count; i++ {
		logs = append(logs, lb.ring[(start+i)%lb.maxSize])
	}
	return logs
}

func (lb *LogBuffer) Flush() error {
	return lb.spill.Flush()
}

// Sync lets the buffer act as a zapcore.WriteSyncer.
func (lb *LogBuffer) Sync() error {
	return lb.Flush()
}

// Close spills whatever is still in memory and closes the file.
func (lb *LogBuffer) Close() error {
	for _, entry := range lb.GetRecentLogs(0) {
		if err := lb.spillEntry(entry); err != nil {
			lb.logger.Error("Failed to spill entry during close", zap.Error(err))
		}
	}
	total, spilled := lb.GetStats()
	lb.logger.Debug("Log buffer closed",
		zap.Uint64("total_entries", total),
		zap.Uint64("spilled_entries", spilled))
	return lb.spill.Close()
}

func (lb *LogBuffer) GetStats() (total, spilled uint64) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.totalEntries, lb.spilledEntries
}
