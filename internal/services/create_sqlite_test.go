package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/azuldeco/azul-admin/internal/config"
	"github.com/azuldeco/azul-admin/internal/db"
	"github.com/azuldeco/azul-admin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openSeededFile connects the way the server does: a sqlite file, migrated and seeded.
func openSeededFile(t *testing.T) *DocumentService {
	t.Helper()
	l := logging.Discard()
	cfg := config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "azul.db"), Retries: 1}
	conn, err := db.Connect(cfg, l)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, db.Migrate(conn, cfg.Driver, cfg.ConnString(), false, l))
	require.NoError(t, db.Seed(conn))
	return newDocumentService(t, conn)
}

func TestCreateAfterSeed(t *testing.T) {
	svc := openSeededFile(t)

	doc, err := svc.Create(testCtx(), quoteFor("3534123456", 15000))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Number)
	assert.WithinDuration(t, fixedNow.Add(7*24*time.Hour), *doc.ValidUntil, time.Second)
	assert.WithinDuration(t, fixedNow.Add(72*time.Hour), *doc.EstimatedDate, time.Second)
}

func TestConcurrentCreatesOnSQLiteFile(t *testing.T) {
	svc := openSeededFile(t)
	const workers = 10

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []int
		errs    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := svc.Create(testCtx(), quoteFor(fmt.Sprintf("35340000%02d", i), 1000))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			numbers = append(numbers, doc.Number)
		}(i)
	}
	wg.Wait()

	require.Empty(t, errs)
	sort.Ints(numbers)
	want := make([]int, workers)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, numbers)
}
