// Package health probes bookmark URLs so dead links can be found and
// culled. Checks run on a bounded worker pool; a HEAD request is tried
// first with a GET fallback for servers that reject HEAD.
package health

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nbrandt/linkstash/internal/model"
)

// Status represents the health of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

// Result holds the check outcome for a single bookmark.
type Result struct {
	Bookmark   model.Bookmark
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // error category for unreachable URLs
}

// Report aggregates check results for display.
type Report struct {
	Healthy     []Result
	Dead        []Result
	Unreachable []Result
}

// Checker probes bookmark URLs.
type Checker struct {
	client         *http.Client
	concurrency    int
	excludeDomains map[string]bool
}

// NewChecker creates a Checker. 404s on excluded domains are reported
// as unreachable (possibly private) rather than dead.
func NewChecker(concurrency int, timeout time.Duration, excludeDomains []string) *Checker {
	if concurrency < 1 {
		concurrency = 1
	}

	excludeMap := make(map[string]bool)
	for _, domain := range excludeDomains {
		excludeMap[strings.ToLower(domain)] = true
	}

	return &Checker{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		concurrency:    concurrency,
		excludeDomains: excludeMap,
	}
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// Check probes every bookmark URL and returns an aggregated report.
func (c *Checker) Check(bookmarks []model.Bookmark, onProgress ProgressFunc) Report {
	if len(bookmarks) == 0 {
		return Report{}
	}

	// Suppress noisy HTTP client logging (protocol errors, unsolicited
	// responses, etc.)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	results := make([]Result, len(bookmarks))
	jobs := make(chan int, len(bookmarks))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < c.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = c.checkURL(bookmarks[idx])

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(bookmarks))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range bookmarks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var report Report
	for _, result := range results {
		switch result.Status {
		case Dead:
			report.Dead = append(report.Dead, result)
		case Unreachable:
			report.Unreachable = append(report.Unreachable, result)
		default:
			report.Healthy = append(report.Healthy, result)
		}
	}
	return report
}

// checkURL checks a single URL.
func (c *Checker) checkURL(bookmark model.Bookmark) Result {
	result := Result{Bookmark: bookmark}

	// Try HEAD first, fall back to GET for servers that reject it
	resp, err := c.client.Head(bookmark.URL)
	if err != nil {
		resp, err = c.client.Get(bookmark.URL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		if c.isExcludedDomain(bookmark.URL) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 500s, 403s and friends may be temporary or auth-gated
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

// isExcludedDomain checks the URL's host against the exclude list,
// including parent domains ("api.github.com" matches "github.com").
func (c *Checker) isExcludedDomain(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Host)
	if c.excludeDomains[host] {
		return true
	}
	for domain := range c.excludeDomains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
