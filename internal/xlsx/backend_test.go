package xlsx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-works/storebook/pkg/types"
)

// newTestBackend returns an attached backend over a temp data dir with
// a fixed clock.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	b.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	cfg := types.Config{Backend: types.BackendWorkbook, DataDir: t.TempDir()}
	require.NoError(t, b.Attach(cfg))
	t.Cleanup(func() { _ = b.Detach() })
	return b
}

func TestBackendAttachBootstrapsGroups(t *testing.T) {
	b := newTestBackend(t)

	for _, g := range allGroups {
		_, err := os.Stat(filepath.Join(b.DataDir(), g.file))
		assert.NoError(t, err, "expected %s to exist after attach", g.file)
	}
}

func TestBackendAttachTwice(t *testing.T) {
	b := newTestBackend(t)
	err := b.Attach(types.Config{Backend: types.BackendWorkbook, DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackendAttachValidatesConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "sqlite", DataDir: "x"}), types.ErrBackendUnknown)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendWorkbook}), types.ErrDataDirEmpty)
}

func TestBackendDetachedOperationsFail(t *testing.T) {
	b := NewBackend()
	_, err := b.Customers().Get("c1")
	assert.ErrorIs(t, err, types.ErrBackendDetached)
	err = b.Products().Save(&types.Product{Name: "Bread"})
	assert.ErrorIs(t, err, types.ErrBackendDetached)
	_, err = b.GenerateSalesReport(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	assert.ErrorIs(t, err, types.ErrBackendDetached)
}

func TestBackendDetachIdempotent(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach())
}

func TestNewShortID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newShortID()
		assert.Len(t, id, 8)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
