package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const reloadDebounce = 250 * time.Millisecond

// Watcher reports edits to a config file. Editors often replace files
// instead of writing them, so the parent directory is watched too.
type Watcher struct {
	fs     *fsnotify.Watcher
	target string
	log    zerolog.Logger
}

func NewWatcher(path string, logger zerolog.Logger) (*Watcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	target = filepath.Clean(target)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}
	if err := fw.Add(target); err != nil {
		logger.Debug().Err(err).Str("path", target).Msg("unable to watch config file directly")
	}

	return &Watcher{fs: fw, target: target, log: logger}, nil
}

// Run delivers a reason on reload after each burst of changes settles. Sends
// never block; a pending request absorbs later ones. Run closes the watcher
// when ctx is done.
func (w *Watcher) Run(ctx context.Context, reload chan<- string) {
	defer w.fs.Close()

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				timerCh = timer.C
			} else {
				timer.Reset(reloadDebounce)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			select {
			case reload <- "config file updated":
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watcher error")
		}
	}
}
