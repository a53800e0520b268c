package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileTestDB creates a file-backed database. Unlike :memory:, it shares
// state across pooled connections, which real concurrent access needs.
func newFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite checks that range queries (the day
// view and the planner) stay consistent while events are being written.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newFileTestDB(t)
	repo := NewSQLiteEventRepo(database)
	ctx := context.Background()
	day := testutil.Day(2025, 3, 10)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			ev := testutil.NewTestEvent(fmt.Sprintf("Event-%d", i), day.Add(time.Duration(7*60+i*30)*time.Minute), 20*time.Minute)
			if err := repo.Create(ctx, ev); err != nil {
				t.Errorf("writer: create event %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				events, err := repo.ListForRange(ctx, day, day)
				if err != nil {
					t.Errorf("reader %d: list for range: %v", reader, err)
					return
				}
				for _, e := range events {
					if e.ID == "" || e.End.Before(e.Start) {
						t.Errorf("reader %d: got half-written event %+v", reader, e)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	events, err := repo.ListForRange(ctx, day, day)
	require.NoError(t, err)
	assert.Len(t, events, 20)
}
