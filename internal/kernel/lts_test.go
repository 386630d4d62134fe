package kernel

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Latest Linux Kernel Versions</title>
    <item><title>6.10.3: stable</title></item>
    <item><title>6.6.44: longterm</title></item>
    <item><title>6.1.103: longterm</title></item>
    <item><title>5.15.164: longterm</title></item>
    <item><title>6.11-rc2: mainline</title></item>
  </channel>
</rss>`

func TestParseLTSFeed(t *testing.T) {
	got := parseLTSFeed([]byte(sampleFeed))
	want := []string{"66", "61", "515"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseLTSFeed() = %v, want %v", got, want)
	}
}

func TestParseLTSFeedMalformed(t *testing.T) {
	if got := parseLTSFeed([]byte("not xml at all")); got != nil {
		t.Errorf("parseLTSFeed() = %v, want nil", got)
	}
}

func TestFetchLTSVersionsFallbackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := srv.Client()
	client.Transport = rewriteTransport{base: client.Transport, target: srv.URL}

	got := FetchLTSVersions(client)
	if !reflect.DeepEqual(got, fallbackLTS) {
		t.Errorf("FetchLTSVersions() = %v, want fallback %v", got, fallbackLTS)
	}
}

func TestFetchLTSVersionsParsesServedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := srv.Client()
	client.Transport = rewriteTransport{base: client.Transport, target: srv.URL}

	got := FetchLTSVersions(client)
	want := []string{"66", "61", "515"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FetchLTSVersions() = %v, want %v", got, want)
	}
}

// rewriteTransport redirects every request to the test server so the
// real kernel.org feed is never hit.
type rewriteTransport struct {
	base   http.RoundTripper
	target string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	redirected, err := http.NewRequest(req.Method, rt.target, req.Body)
	if err != nil {
		return nil, err
	}
	return rt.base.RoundTrip(redirected)
}

func TestStrippedVersion(t *testing.T) {
	tests := []struct{ in, want string }{
		{"6.12", "612"},
		{"6.6", "66"},
		{"5.15", "515"},
	}
	for _, tt := range tests {
		if got := strippedVersion(tt.in); got != tt.want {
			t.Errorf("strippedVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
