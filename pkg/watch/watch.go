package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/modpick/pkg/errors"
)

// DefaultDebounce is how long a burst of events is collected before the
// change callback runs.
const DefaultDebounce = 200 * time.Millisecond

var watchOp = map[fsnotify.Op]string{
	fsnotify.Create: "create",
	fsnotify.Write:  "write",
	fsnotify.Remove: "remove",
	fsnotify.Rename: "rename",
	fsnotify.Chmod:  "chmod",
}

// Watcher reports changes to a set of files and directories. Files are
// watched through their parent directory so that editors replacing a file
// are noticed too.
type Watcher struct {
	fw       *fsnotify.Watcher
	files    map[string]bool
	dirs     map[string]bool
	debounce time.Duration
	logger   zerolog.Logger
}

// New watches targets. Directories report changes to any entry; files only
// to themselves. Targets whose directory does not exist yet are skipped.
func New(targets []string, debounce time.Duration, logger zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}

	w := &Watcher{
		fw:       fw,
		files:    map[string]bool{},
		dirs:     map[string]bool{},
		debounce: debounce,
		logger:   logger,
	}

	added := map[string]bool{}
	for _, target := range targets {
		target = filepath.Clean(target)
		dir := filepath.Dir(target)
		if fi, err := os.Stat(target); err == nil && fi.IsDir() {
			dir = target
			w.dirs[target] = true
		} else {
			w.files[target] = true
		}

		if added[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			logger.Debug().Err(err).Str("dir", dir).Msg("Cannot watch directory, skipping")
			continue
		}
		added[dir] = true
		logger.Debug().Str("dir", dir).Msg("Watching")
	}

	if len(added) == 0 {
		_ = fw.Close()
		return nil, errors.New(errors.ErrNotFound, "nothing to watch")
	}
	return w, nil
}

func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	return w.files[name] || w.dirs[name] || w.dirs[filepath.Dir(name)]
}

// Run calls onChange with the sorted paths changed during each burst of
// events, until ctx is done. An error from onChange is logged and watching
// goes on.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string) error) error {
	defer func() { _ = w.fw.Close() }()

	pending := map[string]bool{}
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event.Name) {
				continue
			}
			w.logger.Trace().Str("op", watchOp[event.Op]).Str("path", event.Name).Msg("File event")
			pending[filepath.Clean(event.Name)] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			pending = map[string]bool{}

			if err := onChange(changed); err != nil {
				w.logger.Error().Err(err).Strs("changed", changed).Msg("Change handler failed")
			}
		}
	}
}
