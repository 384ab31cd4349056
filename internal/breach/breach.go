package breach

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	// DefaultBaseURL is the public k-anonymity range-query service.
	DefaultBaseURL = "https://api.pwnedpasswords.com"

	// DefaultTimeout bounds the range query; a timeout follows the same
	// fail-open path as any other failure.
	DefaultTimeout = 5 * time.Second

	prefixLength = 5
)

// Checker queries a k-anonymity range endpoint to estimate how many times a
// candidate password has appeared in known breaches. Only the first five hex
// characters of the candidate's SHA-1 hash ever leave the process.
type Checker struct {
	baseURL  string
	client   *http.Client
	failures atomic.Uint64
}

// NewChecker creates a Checker against the public endpoint with the default
// timeout.
func NewChecker() *Checker {
	return NewCheckerWithClient(DefaultBaseURL, &http.Client{Timeout: DefaultTimeout})
}

// NewCheckerWithClient creates a Checker using the given base URL and HTTP
// client.
func NewCheckerWithClient(baseURL string, client *http.Client) *Checker {
	return &Checker{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// Check returns the breach count for the candidate password. Zero means "not
// found in the queried range", not "never breached". Network and parse
// failures are logged and reported as zero so an outage never blocks the
// caller; Failures exposes how often that has happened.
func (c *Checker) Check(ctx context.Context, candidate string) int {
	sum := sha1.Sum([]byte(candidate))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := digest[:prefixLength], digest[prefixLength:]

	count, err := c.queryRange(ctx, prefix, suffix)
	if err != nil {
		c.failures.Add(1)
		slog.Warn("breach check failed, treating as not breached", "error", err)
		return 0
	}
	return count
}

// Failures returns how many checks have taken the fail-open path.
func (c *Checker) Failures() uint64 {
	return c.failures.Load()
}

// queryRange fetches the suffix:count lines for a hash prefix and returns the
// count for the matching suffix, or 0 when the suffix is absent.
func (c *Checker) queryRange(ctx context.Context, prefix, suffix string) (int, error) {
	url := c.baseURL + "/range/" + prefix

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("range query returned status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		rest, found := strings.CutPrefix(line, suffix+":")
		if !found {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return 0, fmt.Errorf("parsing count in line %q: %w", line, err)
		}
		return count, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}

	return 0, nil
}
