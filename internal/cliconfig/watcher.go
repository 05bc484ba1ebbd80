package cliconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/opt-labs/solverd/pkg/log"
)

// defaultDebounce absorbs the editor write-then-rename burst that most
// config saves produce.
const defaultDebounce = 200 * time.Millisecond

// Watcher monitors the config file and delivers re-validated configs.
// Changes that fail to parse or validate are logged and dropped; the
// previous configuration stays in effect.
type Watcher struct {
	path     string
	base     Config
	logger   log.Logger
	onChange func(Config)
}

// NewWatcher creates a watcher for the given config file path. base is the
// configuration the file is re-applied over on each change (flag and env
// precedence was already resolved into it). onChange receives each valid
// new configuration.
func NewWatcher(path string, base Config, logger log.Logger, onChange func(Config)) *Watcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{path: path, base: base, logger: logger, onChange: onChange}
}

// Start watches until the context is canceled. It watches the parent
// directory rather than the file itself so atomic-rename saves keep being
// observed.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go w.run(ctx, fsw)
	return nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()

	var debounce *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(defaultDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			w.reload()

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) reload() {
	fc, err := LoadFileConfig(w.path)
	if err != nil {
		w.logger.Warn("config reload: read failed", log.String("path", w.path), log.Err(err))
		return
	}

	cfg := w.base
	if err := ApplyFileConfig(&cfg, fc, nil); err != nil {
		w.logger.Warn("config reload: apply failed", log.Err(err))
		return
	}
	if err := cfg.Validate(); err != nil {
		w.logger.Warn("config reload: invalid config kept previous", log.Err(err))
		return
	}

	w.logger.Info("config reloaded", log.String("path", w.path))
	w.onChange(cfg)
}
