package pacman

import (
	"fmt"

	"github.com/communitybig/kernelctl/internal/runner"
)

// Manager composes the query client and the command runner into generic
// single-package operations. Kernels and drivers have richer facades
// with pairing and conflict logic; this one installs or removes exactly
// the named package.
type Manager struct {
	client       *Client
	cmd          runner.Commander
	privilegeCmd string
}

// NewManager builds a generic package manager.
func NewManager(client *Client, cmd runner.Commander, privilegeCmd string) *Manager {
	return &Manager{client: client, cmd: cmd, privilegeCmd: privilegeCmd}
}

// Install installs one package. Progress, output and completion are
// delivered through the sink.
func (m *Manager) Install(name string, sink runner.Sink) runner.Operation {
	sink.Progress(0.1, fmt.Sprintf("Starting installation of %s...", name))

	argv := []string{m.privilegeCmd, "pacman", "-S", "--noconfirm", name}
	return m.cmd.Run(runner.Request{Argv: argv}, sink)
}

// Remove removes one package. Removing a package that is not installed
// is a no-op that completes successfully without spawning anything.
func (m *Manager) Remove(name string, sink runner.Sink) runner.Operation {
	if !m.client.IsInstalled(name) {
		sink.OutputLine("No packages to remove.")
		sink.Complete(true)
		return runner.Completed(true)
	}

	sink.Progress(0.1, fmt.Sprintf("Starting removal of %s...", name))

	argv := []string{m.privilegeCmd, "pacman", "-R", "--noconfirm", name}
	return m.cmd.Run(runner.Request{Argv: argv, TotalTargets: 1}, sink)
}
