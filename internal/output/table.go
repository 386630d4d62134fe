package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/communitybig/kernelctl/internal/driver"
	"github.com/communitybig/kernelctl/internal/kernel"
	"github.com/communitybig/kernelctl/internal/pacman"
	"github.com/communitybig/kernelctl/internal/store"
)

// ANSI color codes for table highlights
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func colorize(s, color string) string {
	if !IsColorEnabled() {
		return s
	}
	return color + s + colorReset
}

// kernelTags renders the flag column for a kernel row.
func kernelTags(f kernel.Flags) string {
	var tags []string
	if f.LTS {
		tags = append(tags, "LTS")
	}
	if f.RT {
		tags = append(tags, "RT")
	}
	if f.Xanmod {
		tags = append(tags, "XanMod")
	}
	if f.Optimized {
		tags = append(tags, fmt.Sprintf("x64v%d", f.OptLevel))
	}
	return strings.Join(tags, " ")
}

// RenderKernelTable renders a table of kernels with their details.
func RenderKernelTable(kernels []kernel.Kernel) string {
	if len(kernels) == 0 {
		return "No kernels found.\n"
	}

	sorted := make([]kernel.Kernel, len(kernels))
	copy(sorted, kernels)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-24s %-18s %-10s %-10s %s\n",
		"KERNEL", "VERSION", "REPO", "STATUS", "TYPE"))
	sb.WriteString(strings.Repeat("-", 78) + "\n")

	for _, k := range sorted {
		status := colorize("available", colorGray)
		if k.Installed {
			status = colorize("installed", colorGreen)
		}
		repo := k.Repository
		if repo == "" {
			repo = "-"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-18s %-10s %-10s %s\n",
			k.Name, k.Version, repo, status, kernelTags(k.Flags)))
	}
	return sb.String()
}

// RenderPackageTable renders plain search results.
func RenderPackageTable(records []pacman.Record) string {
	if len(records) == 0 {
		return "No packages found.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-32s %-20s %s\n", "PACKAGE", "VERSION", "REPO"))
	sb.WriteString(strings.Repeat("-", 64) + "\n")
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("%-32s %-20s %s\n", r.Name, r.Version, r.Repository))
	}
	return sb.String()
}

// RenderDriverTable renders the Mesa variant catalog with the active
// variant marked.
func RenderDriverTable(drivers []driver.Driver, activeID string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %-12s %-8s %s\n", "ID", "NAME", "ACTIVE", "DESCRIPTION"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for _, d := range drivers {
		active := ""
		if d.ID == activeID {
			active = colorize("yes", colorGreen)
		}
		sb.WriteString(fmt.Sprintf("%-12s %-12s %-8s %s\n", d.ID, d.Name, active, d.Description))
	}
	return sb.String()
}

// RenderHistoryTable renders recorded operations, newest first.
func RenderHistoryTable(ops []store.Operation) string {
	if len(ops) == 0 {
		return "No recorded operations.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-5s %-16s %-16s %-10s %s\n",
		"ID", "KIND", "WHEN", "RESULT", "COMMAND"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	for _, op := range ops {
		result := colorize("running", colorYellow)
		if op.Finished {
			if op.Success {
				result = colorize("ok", colorGreen)
			} else {
				result = colorize("failed", colorRed)
			}
		}
		sb.WriteString(fmt.Sprintf("%-5d %-16s %-16s %-10s %s\n",
			op.ID, op.Kind, humanize.Time(op.StartedAt), result, op.Argv))
	}
	return sb.String()
}
