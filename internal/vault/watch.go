package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch records documents as active when they are created or written,
// until ctx is cancelled. onTouch, when non-nil, is called with each
// recorded vault-relative path. Hidden files and directories are ignored.
func (v *Vault) Watch(ctx context.Context, onTouch func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := v.addTree(w, v.root); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			v.handleEvent(ctx, w, ev, onTouch)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			v.logger.Warn("watch error", "error", err)
		}
	}
}

func (v *Vault) handleEvent(ctx context.Context, w *fsnotify.Watcher, ev fsnotify.Event, onTouch func(string)) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	if v.isHidden(ev.Name) {
		return
	}

	info, err := os.Stat(ev.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if ev.Has(fsnotify.Create) {
			if err := v.addTree(w, ev.Name); err != nil {
				v.logger.Warn("failed to watch new directory", "dir", ev.Name, "error", err)
			}
		}
		return
	}
	if !info.Mode().IsRegular() {
		return
	}

	rel, err := v.Normalize(ev.Name)
	if err != nil {
		return
	}
	if err := v.store.RecordOpen(ctx, rel); err != nil {
		v.logger.Warn("failed to record activity", "path", rel, "error", err)
		return
	}
	v.logger.Debug("recorded activity", "path", rel, "op", ev.Op.String())
	if onTouch != nil {
		onTouch(rel)
	}
}

// addTree watches dir and every non-hidden directory below it.
func (v *Vault) addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != v.root && v.isHidden(p) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

// isHidden reports whether any element of p below the root starts with a dot.
func (v *Vault) isHidden(p string) bool {
	rel, err := filepath.Rel(v.root, p)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}
