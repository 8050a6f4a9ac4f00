package health

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jeanpaul/unifind/internal/apperr"
	"github.com/jeanpaul/unifind/internal/kv"
)

// Status is the result of one reachability check.
type Status struct {
	Name      string
	Target    string
	Reachable bool
	Error     string
	Latency   time.Duration
}

// probeCountry is a small query used to exercise the search endpoint.
const probeCountry = "Andorra"

// CheckDirectory verifies that the university directory answers a search.
func CheckDirectory(ctx context.Context, client *http.Client, baseURL string) Status {
	s := Status{Name: "directory", Target: baseURL}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if client == nil {
		client = http.DefaultClient
	}
	url := strings.TrimRight(baseURL, "/") + "/search?country=" + probeCountry
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	resp, err := client.Do(req)
	if err != nil {
		s.Error = fmt.Sprintf("cannot reach %s: %s", baseURL, apperr.Friendly(err))
		s.Latency = time.Since(start)
		return s
	}
	defer resp.Body.Close()

	s.Latency = time.Since(start)
	if resp.StatusCode != http.StatusOK {
		s.Error = fmt.Sprintf("endpoint returned HTTP %d", resp.StatusCode)
		return s
	}
	s.Reachable = true
	return s
}

// CheckStorage pings the storage backend when it supports it.
func CheckStorage(ctx context.Context, backend string, store kv.Store) Status {
	s := Status{Name: "storage", Target: backend}
	start := time.Now()

	p, ok := store.(kv.Pinger)
	if !ok {
		s.Reachable = true
		s.Latency = time.Since(start)
		return s
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		s.Error = apperr.Friendly(err)
	} else {
		s.Reachable = true
	}
	s.Latency = time.Since(start)
	return s
}
