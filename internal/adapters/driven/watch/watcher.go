package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/roster/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/logger"
)

// ReadFunc reads the current roles at a location.
type ReadFunc func(ctx context.Context, location string) ([]domain.Role, error)

// Watcher streams changes to a single role file.
type Watcher struct {
	path string
	read ReadFunc
}

// New creates a watcher for the role file at path. Only local paths are
// supported.
func New(path string) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: role file path is empty", domain.ErrInvalidInput)
	}
	path = strings.TrimPrefix(path, "file://")
	if strings.Contains(path, "://") {
		return nil, fmt.Errorf("%w: cannot watch remote location %s", domain.ErrInvalidInput, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return &Watcher{path: abs, read: file.ReadRoles}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Watch starts watching and returns a channel of changes. The channel is
// closed when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.StoreChange, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("%w: watching %s: %w", domain.ErrStoreUnavailable, filepath.Dir(w.path), err)
	}

	changes := make(chan domain.StoreChange)
	go func() {
		defer close(changes)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				change := w.handleEvent(ctx, event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("watch %s: %v", w.path, err)
				select {
				case changes <- domain.StoreChange{Path: w.path, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	logger.Debug("watching %s", w.path)
	return changes, nil
}

// handleEvent converts a filesystem event into a change, or nil when the
// event does not concern the role file.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) *domain.StoreChange {
	if filepath.Clean(event.Name) != w.path {
		return nil
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.StoreChange{Type: domain.ChangeDeleted, Path: w.path}
	default:
		return nil
	}

	change := &domain.StoreChange{Type: changeType, Path: w.path}
	roles, err := w.read(ctx, w.path)
	if err != nil {
		change.Err = err
		return change
	}
	change.Roles = roles
	return change
}
