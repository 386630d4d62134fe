package store

import "time"

// Operation is one recorded package operation.
type Operation struct {
	ID         int64
	Kind       string // "install-kernel", "install-package", "apply-driver", "update-system", ...
	Argv       string
	StartedAt  time.Time
	FinishedAt time.Time
	Finished   bool
	Success    bool
}
