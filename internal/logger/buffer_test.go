package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBuffer(t *testing.T, size int) (*LogBuffer, string) {
	t.Helper()
	spill := filepath.Join(t.TempDir(), "spill.log")
	buffer, err := NewLogBuffer(size, spill, zap.NewNop())
	require.NoError(t, err)
	return buffer, spill
}

func TestLogBufferConcurrentAccess(t *testing.T) {
	buffer, spill := newTestBuffer(t, 100)

	var wg sync.WaitGroup
	numGoroutines := 10
	logsPerGoroutine := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < logsPerGoroutine; j++ {
				fields := map[string]interface{}{"goroutine": id, "iteration": j}
				if err := buffer.Add("info", fmt.Sprintf("goroutine %d iteration %d", id, j), fields); err != nil {
					t.Errorf("failed to add log: %v", err)
				}
			}
		}(i)
	}

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for i := 0; i < 20; i++ {
			_ = buffer.GetRecentLogs(10)
			time.Sleep(time.Millisecond)
		}
	}()

	wg.Wait()
	<-readDone

	total, spilled := buffer.GetStats()
	assert.Equal(t, uint64(numGoroutines*logsPerGoroutine), total)
	assert.Equal(t, total-100, spilled)
	assert.Len(t, buffer.GetRecentLogs(0), 100)

	require.NoError(t, buffer.Close())
	data, err := os.ReadFile(spill)
	require.NoError(t, err)
	assert.Equal(t, numGoroutines*logsPerGoroutine, strings.Count(string(data), "\n"))
}

func TestLogBufferRingBufferBehavior(t *testing.T) {
	buffer, _ := newTestBuffer(t, 5)
	defer buffer.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, buffer.Add("info", fmt.Sprintf("Log %d", i), nil))
	}

	logs := buffer.GetRecentLogs(10)
	require.Len(t, logs, 5)
	assert.Equal(t, "Log 5", logs[0].Message)
	assert.Equal(t, "Log 9", logs[4].Message)

	latest := buffer.GetRecentLogs(2)
	require.Len(t, latest, 2)
	assert.Equal(t, "Log 8", latest[0].Message)
	assert.Equal(t, "Log 9", latest[1].Message)
}

func TestLogBufferPartialRing(t *testing.T) {
	buffer, _ := newTestBuffer(t, 5)
	defer buffer.Close()

	require.NoError(t, buffer.Add("info", "first", nil))
	require.NoError(t, buffer.Add("warn", "second", nil))

	logs := buffer.GetRecentLogs(0)
	require.Len(t, logs, 2)
	assert.Equal(t, "first", logs[0].Message)
	assert.Equal(t, "warn", logs[1].Level)
}

func TestTUILoggerWritesIntoBuffer(t *testing.T) {
	buffer, _ := newTestBuffer(t, 10)
	defer buffer.Close()

	log, err := CreateTUILoggerWithBuffer(false, buffer)
	require.NoError(t, err)

	log.Named("presale").Info("Launch created", zap.String("launch_id", "abc"))
	log.Debug("hidden")

	logs := buffer.GetRecentLogs(0)
	require.Len(t, logs, 1)
	assert.Equal(t, "info", logs[0].Level)
	assert.Equal(t, "Launch created", logs[0].Message)
	assert.Equal(t, "abc", logs[0].Fields["launch_id"])
	assert.Equal(t, "presale", logs[0].Fields["logger"])
	assert.False(t, logs[0].Timestamp.IsZero())

	_, err = CreateTUILoggerWithBuffer(false, nil)
	assert.Error(t, err)
}
