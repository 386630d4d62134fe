package kernel

import (
	"encoding/xml"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
)

// feedURL is the kernel.org release feed; longterm entries carry a
// ": longterm" marker in their title.
const feedURL = "https://www.kernel.org/feeds/kdist.xml"

// fallbackLTS is used whenever the feed cannot be fetched or parsed.
// Versions are dot-stripped ("612" means 6.12) to match versioned
// Manjaro kernel names.
var fallbackLTS = []string{"66", "612", "614"}

var longtermTitleRe = regexp.MustCompile(`^(\d+\.\d+).*: longterm`)

type kdistFeed struct {
	Items []struct {
		Title string `xml:"title"`
	} `xml:"channel>item"`
}

// FetchLTSVersions returns the current longterm kernel versions from
// kernel.org, dot-stripped. Any failure degrades to the fallback list;
// kernel listing must never block or fail on feed trouble. Callers are
// expected to fetch once and keep the result for the process lifetime.
func FetchLTSVersions(client *http.Client) []string {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	resp, err := client.Get(feedURL)
	if err != nil {
		logrus.WithError(err).Warn("failed to fetch LTS kernel versions")
		return fallbackLTS
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.Status).Warn("unexpected response from kernel.org feed")
		return fallbackLTS
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		logrus.WithError(err).Warn("failed to read LTS kernel feed")
		return fallbackLTS
	}

	versions := parseLTSFeed(body)
	if len(versions) == 0 {
		logrus.Warn("kernel.org feed contained no longterm entries")
		return fallbackLTS
	}
	return versions
}

func parseLTSFeed(body []byte) []string {
	var feed kdistFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		logrus.WithError(err).Warn("failed to parse LTS kernel feed")
		return nil
	}

	var versions []string
	for _, item := range feed.Items {
		m := longtermTitleRe.FindStringSubmatch(item.Title)
		if m == nil {
			continue
		}
		versions = append(versions, strippedVersion(m[1]))
	}
	return versions
}

// strippedVersion converts "6.12" to "612".
func strippedVersion(v string) string {
	out := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		if v[i] != '.' {
			out = append(out, v[i])
		}
	}
	return string(out)
}
