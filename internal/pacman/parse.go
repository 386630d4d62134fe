package pacman

import (
	"regexp"
	"strings"
)

// searchLineRe matches the header line of a pacman -Ss entry:
// "repo/name version [group] [installed]". Description lines are
// indented and skipped.
var searchLineRe = regexp.MustCompile(`^([^\s/]+)/([^\s]+)\s+([^\s]+)`)

// parseInstalled parses pacman -Q output ("name version" per line).
// Garbled or truncated lines are skipped rather than failing the whole
// listing.
func parseInstalled(output string) []Record {
	var records []Record
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		records = append(records, Record{
			Name:    fields[0],
			Version: fields[1],
		})
	}
	return records
}

// parseSearch parses pacman -Ss output. Each package occupies a header
// line followed by an indented description line.
func parseSearch(output string) []Record {
	var records []Record
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" || strings.HasPrefix(line, " ") {
			continue
		}
		m := searchLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		records = append(records, Record{
			Name:       m[2],
			Version:    m[3],
			Repository: m[1],
		})
	}
	return records
}
