package pacman

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseInstalled(t *testing.T) {
	// Second line carries embedded multiple spaces; third is garbled.
	output := "linux61 6.1.12-1\n" +
		"linux-lts    6.6.8-1\n" +
		"broken-line\n" +
		"mesa 23.3.3-1\n"

	got := parseInstalled(output)
	want := []Record{
		{Name: "linux61", Version: "6.1.12-1"},
		{Name: "linux-lts", Version: "6.6.8-1"},
		{Name: "mesa", Version: "23.3.3-1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseInstalled() = %+v, want %+v", got, want)
	}
}

func TestParseSearch(t *testing.T) {
	output := "core/linux61 6.1.12-1 [installed]\n" +
		"    The Linux61 kernel and modules\n" +
		"extra/linux-xanmod 6.7.1-1\n" +
		"    The Linux kernel and modules with Xanmod patches\n" +
		"community/mesa-tkg-git   24.0.0-1\n" +
		"    Mesa built from git with tkg patches\n"

	got := parseSearch(output)
	want := []Record{
		{Name: "linux61", Version: "6.1.12-1", Repository: "core"},
		{Name: "linux-xanmod", Version: "6.7.1-1", Repository: "extra"},
		{Name: "mesa-tkg-git", Version: "24.0.0-1", Repository: "community"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseSearch() = %+v, want %+v", got, want)
	}
}

func TestParseSearchSkipsDescriptionOnlyOutput(t *testing.T) {
	if got := parseSearch("    just a description line\n"); got != nil {
		t.Errorf("parseSearch() = %+v, want nil", got)
	}
}

func TestListInstalledUsesQueryOutput(t *testing.T) {
	c := &Client{run: func(args ...string) ([]byte, error) {
		if !reflect.DeepEqual(args, []string{"-Q"}) {
			t.Errorf("args = %v, want [-Q]", args)
		}
		return []byte("linux61 6.1.12-1\n"), nil
	}}

	got, err := c.ListInstalled()
	if err != nil {
		t.Fatalf("ListInstalled() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "linux61" {
		t.Errorf("ListInstalled() = %+v", got)
	}
}

func TestSearchTreatsEmptyFailureAsNoMatch(t *testing.T) {
	c := &Client{run: func(args ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}}

	got, err := c.Search("nonexistent")
	if err != nil {
		t.Fatalf("Search() error = %v, want nil for empty result", err)
	}
	if got != nil {
		t.Errorf("Search() = %+v, want nil", got)
	}
}

func TestIsInstalled(t *testing.T) {
	c := &Client{run: func(args ...string) ([]byte, error) {
		if len(args) == 2 && args[1] == "linux61" {
			return []byte("linux61 6.1.12-1\n"), nil
		}
		return nil, errors.New("exit status 1")
	}}

	if !c.IsInstalled("linux61") {
		t.Error("IsInstalled(linux61) = false, want true")
	}
	if c.IsInstalled("linux-zen") {
		t.Error("IsInstalled(linux-zen) = true, want false")
	}
}
