package logger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSafeFileWriterConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "writer.log")
	writer, err := NewSafeFileWriter(path, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if err := writer.WriteLine(fmt.Sprintf("goroutine %d line %d", id, j)); err != nil {
					t.Errorf("failed to write line: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	lines, _ := writer.GetStats()
	assert.Equal(t, uint64(500), lines)
	require.NoError(t, writer.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestSafeFileWriterPeriodicFlush(t *testing.T) {
	writer, err := NewSafeFileWriter(filepath.Join(t.TempDir(), "slow.log"), 5*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	defer writer.Close()

	require.NoError(t, writer.WriteLine("one"))
	assert.Eventually(t, func() bool {
		_, flushes := writer.GetStats()
		return flushes >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestSafeCSVWriterHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	header := []string{"id", "sale_name", "status"}

	for round := 0; round < 2; round++ {
		writer, err := NewSafeCSVWriter(path, header, time.Second, zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, writer.WriteRecord([]string{fmt.Sprintf("id-%d", round), "Alpha", "active"}))
		records, _ := writer.GetStats()
		assert.Equal(t, uint64(1), records)
		require.NoError(t, writer.Close())
	}

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "id-1", rows[2][0])
}
