package kernel

import "testing"

func TestIsKernel(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		want bool
	}{
		{"linux", true},
		{"linux61", true},
		{"linux612", true},
		{"linux-lts", true},
		{"linux61-lts", true},
		{"linux-hardened", true},
		{"linux-zen", true},
		{"linux-xanmod", true},
		{"linux61-xanmod", true},
		{"linux-xanmod-lts", true},
		{"linux61-rt", true},
		{"linux-xanmod-x64v3", true},
		{"linux-xanmod-lts-x64v2", true},

		{"linux61-headers", false},
		{"linux61-nvidia", false},
		{"linux61-zfs", false},
		{"linux61-virtualbox-host-modules", false},
		{"linux-firmware", false},
		{"linux-api-headers", false},
		{"mesa", false},
		{"util-linux", false},
	}
	for _, tt := range tests {
		if got := rules.IsKernel(tt.name); got != tt.want {
			t.Errorf("IsKernel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFlagsFor(t *testing.T) {
	rules := DefaultRules()
	lts := []string{"66", "612"}

	tests := []struct {
		name string
		want Flags
	}{
		{"linux-lts", Flags{LTS: true}},
		{"linux612", Flags{LTS: true}},
		{"linux61", Flags{}},
		{"linux61-rt", Flags{RT: true}},
		{"linux-xanmod", Flags{Xanmod: true}},
		{"linux-xanmod-lts", Flags{LTS: true, Xanmod: true}},
		{"linux-xanmod-x64v3", Flags{Xanmod: true, Optimized: true, OptLevel: 3}},
		{"linux-xanmod-lts-x64v2", Flags{LTS: true, Xanmod: true, Optimized: true, OptLevel: 2}},
	}
	for _, tt := range tests {
		if got := rules.FlagsFor(tt.name, lts); got != tt.want {
			t.Errorf("FlagsFor(%q) = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestFlagsForVersionedKernelNotLongterm(t *testing.T) {
	rules := DefaultRules()
	got := rules.FlagsFor("linux67", []string{"66", "612"})
	if got.LTS {
		t.Errorf("linux67 flagged LTS with longterm list {66, 612}")
	}
}

func TestNewRulesCustomPatterns(t *testing.T) {
	rules := NewRules([]string{`^mykernel$`}, []string{`-extras`})
	if !rules.IsKernel("mykernel") {
		t.Error("IsKernel(mykernel) = false under custom allow")
	}
	if rules.IsKernel("linux") {
		t.Error("IsKernel(linux) = true under custom allow")
	}
	if got := rules.AllowPatterns(); len(got) != 1 || got[0] != `^mykernel$` {
		t.Errorf("AllowPatterns() = %v", got)
	}
}
