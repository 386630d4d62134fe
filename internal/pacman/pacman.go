// Package pacman runs read-only pacman queries, parses their
// line-oriented output into structured records, and provides the
// generic single-package install/remove operations. Kernel and driver
// specific composition lives in their own packages.
package pacman

import (
	"fmt"
	"os"
	"os/exec"
)

// Record is one package as reported by pacman. Repository is empty for
// locally-installed queries (pacman -Q has no repo column).
type Record struct {
	Name       string
	Version    string
	Repository string
}

// Client issues pacman queries. The zero value is not usable; call New.
type Client struct {
	run func(args ...string) ([]byte, error)
}

// New returns a Client that shells out to pacman on PATH.
func New() *Client {
	return &Client{run: runPacman}
}

func runPacman(args ...string) ([]byte, error) {
	cmd := exec.Command("pacman", args...)
	// LANG=C keeps the column layout and wording stable across locales.
	cmd.Env = append(os.Environ(), "LANG=C")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return output, fmt.Errorf("pacman %v failed: %w (stderr: %s)", args, err, string(exitErr.Stderr))
		}
		return output, fmt.Errorf("pacman %v failed: %w", args, err)
	}
	return output, nil
}

// ListInstalled returns every installed package via pacman -Q.
func (c *Client) ListInstalled() ([]Record, error) {
	output, err := c.run("-Q")
	if err != nil {
		return nil, err
	}
	return parseInstalled(string(output)), nil
}

// Search queries the sync databases via pacman -Ss. An empty pattern
// lists everything the repositories carry.
func (c *Client) Search(pattern string) ([]Record, error) {
	args := []string{"-Ss"}
	if pattern != "" {
		args = append(args, pattern)
	}
	output, err := c.run(args...)
	if err != nil {
		// pacman -Ss exits 1 when nothing matches; that is an empty
		// result, not a failure.
		if len(output) == 0 {
			return nil, nil
		}
		return nil, err
	}
	return parseSearch(string(output)), nil
}

// IsInstalled reports whether a single package is installed, by exit
// code of pacman -Q <name>.
func (c *Client) IsInstalled(name string) bool {
	_, err := c.run("-Q", name)
	return err == nil
}
