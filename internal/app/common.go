package app

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/communitybig/kernelctl/internal/config"
	"github.com/communitybig/kernelctl/internal/driver"
	"github.com/communitybig/kernelctl/internal/kernel"
	"github.com/communitybig/kernelctl/internal/lockwatch"
	"github.com/communitybig/kernelctl/internal/output"
	"github.com/communitybig/kernelctl/internal/pacman"
	"github.com/communitybig/kernelctl/internal/runner"
	"github.com/communitybig/kernelctl/internal/store"
)

// lockWaitTimeout bounds how long a mutating command waits for another
// package manager to release the pacman database lock.
const lockWaitTimeout = 2 * time.Minute

var (
	ltsOnce     sync.Once
	ltsVersions []string
)

// cachedLTSVersions fetches the kernel.org longterm list once per
// process; every failure path inside degrades to a fallback list.
func cachedLTSVersions() []string {
	ltsOnce.Do(func() {
		ltsVersions = kernel.FetchLTSVersions(nil)
	})
	return ltsVersions
}

func newKernelManager() *kernel.Manager {
	return kernel.NewManager(pacman.New(), runner.New(), privilegeCmd, kernel.DefaultRules(), cachedLTSVersions())
}

func newDriverManager() *driver.Manager {
	return driver.NewManager(pacman.New(), runner.New(), privilegeCmd)
}

// getDBPath returns the history database path, using the flag value or
// the XDG config directory the settings file already lives in.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	dir, err := config.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	return filepath.Join(dir, "history.db"), nil
}

// openHistory opens the history store and begins an operation row.
// History is best-effort: on any failure the operation proceeds without
// recording and the returned store is nil.
func openHistory(kind, argv string) (*store.Store, int64) {
	path, err := getDBPath()
	if err != nil {
		logrus.WithError(err).Debug("history disabled")
		return nil, 0
	}
	db, err := store.New(path)
	if err != nil {
		logrus.WithError(err).Debug("history disabled")
		return nil, 0
	}
	if err := db.CreateSchema(); err != nil {
		logrus.WithError(err).Debug("history disabled")
		db.Close()
		return nil, 0
	}
	id, err := db.BeginOperation(kind, argv)
	if err != nil {
		logrus.WithError(err).Debug("history disabled")
		db.Close()
		return nil, 0
	}
	return db, id
}

// maybeShowWarning prints the pre-operation caution unless the user has
// turned it off with 'kernelctl settings warning off'.
func maybeShowWarning() {
	path, err := config.SettingsPath()
	if err != nil {
		return
	}
	settings := config.LoadSettings(path)
	if !settings.Bool("show_operation_warning", true) {
		return
	}
	fmt.Println("Caution: kernel and driver changes take effect after a reboot and a")
	fmt.Println("failed transaction can leave packages partially applied. Disable this")
	fmt.Println("notice with 'kernelctl settings warning off'.")
	fmt.Println()
}

// runOperation executes one mutating operation end to end: it waits for
// the pacman lock if held, starts the operation with a recording sink,
// and drains the event stream into the console until completion. Ctrl-C
// cancels the running operation best-effort.
func runOperation(kind, argvDesc string, start func(sink runner.Sink) runner.Operation) error {
	maybeShowWarning()

	if lockwatch.Locked(lockwatch.DefaultLockPath) {
		fmt.Println("Another package manager holds the pacman database lock; waiting...")
		if err := lockwatch.WaitUntilFree(lockwatch.DefaultLockPath, lockWaitTimeout); err != nil {
			return err
		}
	}

	events := make(chan runner.Event, 64)
	var sink runner.Sink = runner.ChannelSink{Ch: events}

	db, opID := openHistory(kind, argvDesc)
	if db != nil {
		defer db.Close()
		sink = store.NewRecordingSink(db, opID, sink)
	}

	op := start(sink)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range sigCh {
			op.Cancel()
		}
	}()

	console := output.NewConsole(os.Stdout, showOutput)
	success := console.Drain(events)

	signal.Stop(sigCh)
	close(sigCh)

	if !success {
		return fmt.Errorf("%s failed; see 'kernelctl history' for the transcript", kind)
	}
	return nil
}
