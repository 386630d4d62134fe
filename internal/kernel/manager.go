package kernel

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/communitybig/kernelctl/internal/pacman"
	"github.com/communitybig/kernelctl/internal/runner"
)

// Kernel is one kernel package, installed or available.
type Kernel struct {
	Name       string
	Version    string
	Repository string
	Installed  bool
	Flags      Flags
}

// Registry is the read-only package query surface the manager needs.
// *pacman.Client satisfies it.
type Registry interface {
	ListInstalled() ([]pacman.Record, error)
	Search(pattern string) ([]pacman.Record, error)
	IsInstalled(name string) bool
}

// Manager composes the registry, the classifier rules, and the command
// runner into kernel-level operations.
type Manager struct {
	reg          Registry
	cmd          runner.Commander
	rules        Rules
	privilegeCmd string
	ltsVersions  []string
	log          *logrus.Logger
}

// NewManager builds a kernel manager. ltsVersions is the dot-stripped
// longterm list (see FetchLTSVersions); rules is typically DefaultRules.
func NewManager(reg Registry, cmd runner.Commander, privilegeCmd string, rules Rules, ltsVersions []string) *Manager {
	return &Manager{
		reg:          reg,
		cmd:          cmd,
		rules:        rules,
		privilegeCmd: privilegeCmd,
		ltsVersions:  ltsVersions,
		log:          logrus.StandardLogger(),
	}
}

// Installed returns the installed kernels with their type flags.
func (m *Manager) Installed() ([]Kernel, error) {
	records, err := m.reg.ListInstalled()
	if err != nil {
		return nil, fmt.Errorf("failed to list installed packages: %w", err)
	}

	var kernels []Kernel
	for _, rec := range records {
		if !m.rules.IsKernel(rec.Name) {
			continue
		}
		kernels = append(kernels, Kernel{
			Name:      rec.Name,
			Version:   rec.Version,
			Installed: true,
			Flags:     m.rules.FlagsFor(rec.Name, m.ltsVersions),
		})
	}
	return kernels, nil
}

// Available returns the kernels offered by the repositories, deduplicated
// by name and version, with installed ones marked. One repository search
// is issued per allow pattern; a failing search contributes nothing
// rather than failing the whole listing.
func (m *Manager) Available() ([]Kernel, error) {
	installed := make(map[string]bool)
	if records, err := m.reg.ListInstalled(); err == nil {
		for _, rec := range records {
			installed[rec.Name] = true
		}
	} else {
		m.log.WithError(err).Warn("could not determine installed packages")
	}

	seen := make(map[string]bool)
	var kernels []Kernel
	for _, pattern := range m.rules.AllowPatterns() {
		records, err := m.reg.Search("^" + pattern)
		if err != nil {
			m.log.WithError(err).WithField("pattern", pattern).Debug("kernel search failed")
			continue
		}
		for _, rec := range records {
			if !m.rules.IsKernel(rec.Name) {
				continue
			}
			key := rec.Name + "-" + rec.Version
			if seen[key] {
				continue
			}
			seen[key] = true
			kernels = append(kernels, Kernel{
				Name:       rec.Name,
				Version:    rec.Version,
				Repository: rec.Repository,
				Installed:  installed[rec.Name],
				Flags:      m.rules.FlagsFor(rec.Name, m.ltsVersions),
			})
		}
	}

	sort.Slice(kernels, func(i, j int) bool {
		if kernels[i].Name != kernels[j].Name {
			return kernels[i].Name < kernels[j].Name
		}
		return kernels[i].Version < kernels[j].Version
	})
	return kernels, nil
}

// modulePackages returns the companion packages installed alongside a
// kernel. Headers are always paired so DKMS modules keep building.
func modulePackages(name string) []string {
	return []string{name + "-headers"}
}

// Install installs a kernel and its companion packages. Progress, output
// and completion are delivered through the sink.
func (m *Manager) Install(name string, sink runner.Sink) runner.Operation {
	packages := append([]string{name}, modulePackages(name)...)

	sink.Progress(0.1, fmt.Sprintf("Starting installation of %s and modules...", name))

	argv := append([]string{m.privilegeCmd, "pacman", "-S", "--noconfirm"}, packages...)
	return m.cmd.Run(runner.Request{Argv: argv}, sink)
}

// Remove removes a kernel and its companion packages, skipping any that
// are not installed. Removing an absent kernel is a no-op that completes
// successfully without spawning anything.
func (m *Manager) Remove(name string, sink runner.Sink) runner.Operation {
	var packages []string
	for _, pkg := range append([]string{name}, modulePackages(name)...) {
		if m.reg.IsInstalled(pkg) {
			packages = append(packages, pkg)
		}
	}

	if len(packages) == 0 {
		sink.OutputLine("No packages to remove.")
		sink.Complete(true)
		return runner.Completed(true)
	}

	sink.Progress(0.1, fmt.Sprintf("Starting removal of %s and modules...", name))

	argv := append([]string{m.privilegeCmd, "pacman", "-R", "--noconfirm"}, packages...)
	return m.cmd.Run(runner.Request{Argv: argv, TotalTargets: len(packages)}, sink)
}

// UpdateSystem runs a full system upgrade through the same runner.
func (m *Manager) UpdateSystem(sink runner.Sink) runner.Operation {
	sink.Progress(0.0, "Updating system...")

	argv := []string{m.privilegeCmd, "pacman", "-Syu", "--noconfirm"}
	return m.cmd.Run(runner.Request{Argv: argv}, sink)
}
