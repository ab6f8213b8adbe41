package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/modpick/pkg/errors"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(changed []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, changed)
	return nil
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		out = append(out, c...)
	}
	return out
}

func TestWatcherReportsChanges(t *testing.T) {
	root := t.TempDir()
	choices := filepath.Join(root, "choices.json")
	other := filepath.Join(root, "other.json")
	mods := filepath.Join(root, "mods")
	require.NoError(t, os.WriteFile(choices, []byte("{}"), 0644))
	require.NoError(t, os.MkdirAll(mods, 0755))

	w, err := New([]string{choices, mods}, 20*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, rec.record) }()

	require.NoError(t, os.WriteFile(other, []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(choices, []byte(`{"choices": {}}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(mods, "alpha.jar"), []byte("jar"), 0644))

	assert.Eventually(t, func() bool {
		seen := rec.seen()
		return contains(seen, choices) && contains(seen, filepath.Join(mods, "alpha.jar"))
	}, 5*time.Second, 10*time.Millisecond)
	assert.False(t, contains(rec.seen(), other), "unwatched siblings are ignored")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherNothingToWatch(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "rules.json")}, DefaultDebounce, zerolog.Nop())
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
