package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	index, err := OpenIndex(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })
	return index
}

func TestIndex_InsertAndRecent(t *testing.T) {
	index := openTestIndex(t)

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := index.Insert(Record{
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			Source:      fmt.Sprintf("scans/page%d.jpg", i),
			Model:       "test-vision",
			TotalTokens: 100 * (i + 1),
			Success:     true,
			FilePath:    fmt.Sprintf("/tmp/response_%d.json", i),
		})
		require.NoError(t, err)
	}

	records, err := index.Recent(2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Новые первыми
	assert.Equal(t, "scans/page2.jpg", records[0].Source)
	assert.Equal(t, "scans/page1.jpg", records[1].Source)
	assert.Equal(t, 300, records[0].TotalTokens)
	assert.True(t, records[0].Success)
	assert.NotZero(t, records[0].ID)
}

func TestIndex_RecentEmpty(t *testing.T) {
	index := openTestIndex(t)

	records, err := index.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestIndex_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	index, err := OpenIndex(path)
	require.NoError(t, err)
	require.NoError(t, index.Insert(Record{
		Timestamp: time.Now(),
		Source:    "scan.jpg",
		Model:     "m",
		Success:   true,
	}))
	require.NoError(t, index.Close())

	// Повторное открытие не пересоздает схему и видит старые строки
	reopened, err := OpenIndex(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Recent(10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
