// Package lockwatch observes pacman's global database lock so the CLI
// can tell the user another package manager is running instead of
// letting a mutation fail cold. It is advisory only: the lock can still
// be taken between a check and the actual transaction, in which case
// pacman itself reports the contention and the operation fails normally.
package lockwatch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultLockPath is where pacman keeps its database lock.
const DefaultLockPath = "/var/lib/pacman/db.lck"

// Locked reports whether the lock file currently exists.
func Locked(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WaitUntilFree blocks until the lock file disappears or the timeout
// elapses. It returns nil immediately when the lock is not held.
func WaitUntilFree(path string, timeout time.Duration) error {
	if !Locked(path) {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create lock watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: the lock file itself disappears, and watching
	// a removed path drops the watch on some platforms.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	// The lock may have been released between the Stat and the Add.
	if !Locked(path) {
		return nil
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("lock watcher closed unexpectedly")
			}
			if ev.Name == path && ev.Has(fsnotify.Remove) {
				return nil
			}
			// Rename or attribute churn can also free the lock; re-stat
			// on anything touching our path.
			if ev.Name == path && !Locked(path) {
				return nil
			}
		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("lock watcher closed unexpectedly")
			}
			logrus.WithError(err).Debug("lock watcher error")
		case <-deadline.C:
			return fmt.Errorf("timed out after %s waiting for %s to be released", timeout, path)
		}
	}
}
