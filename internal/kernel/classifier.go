// Package kernel lists, classifies, installs, and removes Linux kernel
// packages. Classification is pure pattern matching over package names;
// the install/remove operations are composed on top of internal/runner.
package kernel

import (
	"regexp"
	"strconv"
	"strings"
)

// Rules decides which package names count as kernels. It is an immutable
// value built once at startup and injected wherever classification is
// needed; there is no ambient global rule set.
type Rules struct {
	allowSrc []string
	allow    []*regexp.Regexp
	deny     []*regexp.Regexp
}

// defaultAllow matches true kernel packages as Manjaro names them.
var defaultAllow = []string{
	`^linux\d*$`,                // standard kernels (linux, linux61, ...)
	`^linux-lts$`,               // long term support kernel
	`^linux\d*-lts$`,            // LTS kernels with version number
	`^linux-hardened$`,          // hardened kernel
	`^linux-zen$`,               // zen kernel
	`^linux-xanmod$`,            // Xanmod kernel
	`^linux\d*-xanmod$`,         // Xanmod kernels with version number
	`^linux-xanmod-lts$`,        // Xanmod LTS kernel
	`^linux\d*-xanmod-lts$`,     // Xanmod LTS kernels with version number
	`^linux\d*-rt$`,             // real-time kernels
	`^linux-xanmod-x64v\d$`,     // Xanmod optimized builds
	`^linux-xanmod-lts-x64v\d$`, // Xanmod LTS optimized builds
}

// defaultDeny filters out module packages that share the kernel's name
// prefix but are not kernels themselves.
var defaultDeny = []string{
	`-acpi_call`,
	`-bbswitch`,
	`-broadcom`,
	`-headers`,
	`-ndiswrapper`,
	`-nvidia`,
	`-r8168`,
	`-virtualbox`,
	`-zfs`,
	`-tp_smapi`,
	`-vhba-module`,
	`-rtl8723bu`,
}

// DefaultRules compiles the stock allow/deny pattern lists.
func DefaultRules() Rules {
	return NewRules(defaultAllow, defaultDeny)
}

// NewRules compiles a custom rule set. Patterns must be valid regular
// expressions; this is called with fixed literals at startup, so a bad
// pattern is a programming error and panics.
func NewRules(allow, deny []string) Rules {
	r := Rules{allowSrc: append([]string(nil), allow...)}
	for _, p := range allow {
		r.allow = append(r.allow, regexp.MustCompile(p))
	}
	for _, p := range deny {
		r.deny = append(r.deny, regexp.MustCompile(p))
	}
	return r
}

// AllowPatterns returns the raw allow patterns, used to drive repository
// searches per pattern.
func (r Rules) AllowPatterns() []string {
	return append([]string(nil), r.allowSrc...)
}

// IsKernel reports whether name is a true kernel package: it must match
// at least one allow pattern and no deny pattern.
func (r Rules) IsKernel(name string) bool {
	matched := false
	for _, re := range r.allow {
		if re.MatchString(name) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, re := range r.deny {
		if re.MatchString(name) {
			return false
		}
	}
	return true
}

// Flags describes what kind of kernel a package name denotes.
type Flags struct {
	LTS       bool
	RT        bool
	Xanmod    bool
	Optimized bool
	OptLevel  int
}

var (
	versionedRe = regexp.MustCompile(`^linux(\d+)$`)
	optLevelRe  = regexp.MustCompile(`-x64v(\d)`)
)

// FlagsFor derives kernel type flags from the package name. Versioned
// Manjaro kernels (linux612) are flagged LTS when their version appears
// in ltsVersions, the dot-stripped longterm list from kernel.org.
func (r Rules) FlagsFor(name string, ltsVersions []string) Flags {
	var f Flags

	if strings.Contains(name, "-rt") {
		f.RT = true
	}
	if strings.Contains(name, "xanmod") {
		f.Xanmod = true
	}

	switch {
	case strings.Contains(name, "-lts"):
		f.LTS = true
	case !f.Xanmod:
		if m := versionedRe.FindStringSubmatch(name); m != nil {
			for _, v := range ltsVersions {
				if v == m[1] {
					f.LTS = true
					break
				}
			}
		}
	}

	if m := optLevelRe.FindStringSubmatch(name); m != nil {
		f.Optimized = true
		f.OptLevel, _ = strconv.Atoi(m[1])
	}

	return f
}
