package health

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hadronlab/cutconf/pkg/node"
)

// Check and overall statuses.
const (
	StatusOK        = "ok"
	StatusReady     = "ready"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Names of the checks registered by WatchDocuments.
const (
	DocumentsCheck = "documents"
	FreshnessCheck = "freshness"
)

// Severity decides what a failing check does to readiness.
type Severity int

const (
	// Critical failures mean lookups cannot be answered; readiness
	// reports unhealthy and the endpoint answers 503.
	Critical Severity = iota
	// Warning failures leave lookups answerable from the documents
	// already loaded; readiness reports degraded.
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "critical"
}

// CheckFunc returns nil when its component is healthy.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of one check.
type CheckResult struct {
	Status   string        `json:"status"`
	Severity string        `json:"severity"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ms,omitempty"`
}

// HealthStatus is the body of the liveness and readiness endpoints.
type HealthStatus struct {
	// Status is "ok" for liveness, and "ready", "degraded" or "unhealthy"
	// for readiness.
	Status    string                 `json:"status"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// DocumentSource is what the document checks inspect. *reader.Reader
// satisfies it.
type DocumentSource interface {
	Documents() []*node.Node
	LoadedAt() time.Time
}

// ErrNoDocuments is reported by DocumentsLoaded when nothing is loaded.
var ErrNoDocuments = errors.New("no calibration documents loaded")

type registered struct {
	severity Severity
	check    CheckFunc
}

// Checker runs the readiness checks of the lookup server.
type Checker struct {
	mu           sync.RWMutex
	checks       map[string]registered
	checkTimeout time.Duration
}

// New creates a checker. A zero timeout means 5 seconds per check.
func New(checkTimeout time.Duration) *Checker {
	if checkTimeout == 0 {
		checkTimeout = 5 * time.Second
	}
	return &Checker{
		checks:       make(map[string]registered),
		checkTimeout: checkTimeout,
	}
}

// RegisterCheck adds or replaces the named check.
func (c *Checker) RegisterCheck(name string, severity Severity, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = registered{severity: severity, check: check}
}

// WatchDocuments registers the document checks for src: a critical check
// that something is loaded and, when maxAge is positive, a warning when the
// last successful load is older than maxAge. A stale load usually means
// scheduled or watched reloads keep failing while the old documents are
// still served.
func (c *Checker) WatchDocuments(src DocumentSource, maxAge time.Duration) {
	c.RegisterCheck(DocumentsCheck, Critical, DocumentsLoaded(func() int {
		return len(src.Documents())
	}))
	if maxAge > 0 {
		c.RegisterCheck(FreshnessCheck, Warning, LoadedWithin(src.LoadedAt, maxAge))
	}
}

// Names returns the registered check names, sorted.
func (c *Checker) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckLiveness reports that the process is running.
func (c *Checker) CheckLiveness(ctx context.Context) HealthStatus {
	return HealthStatus{Status: StatusOK, Timestamp: time.Now()}
}

// CheckReadiness runs every check concurrently. A failing critical check
// makes the result unhealthy; otherwise a failing warning makes it
// degraded.
func (c *Checker) CheckReadiness(ctx context.Context) HealthStatus {
	c.mu.RLock()
	checks := make(map[string]registered, len(c.checks))
	for name, r := range c.checks {
		checks[name] = r
	}
	c.mu.RUnlock()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]CheckResult, len(checks))
	)
	for name, r := range checks {
		wg.Add(1)
		go func(name string, r registered) {
			defer wg.Done()
			res := c.run(ctx, r)
			mu.Lock()
			results[name] = res
			mu.Unlock()
		}(name, r)
	}
	wg.Wait()

	status := StatusReady
	for name, res := range results {
		if res.Status == StatusOK {
			continue
		}
		if checks[name].severity == Critical {
			status = StatusUnhealthy
			break
		}
		status = StatusDegraded
	}
	return HealthStatus{Status: status, Checks: results, Timestamp: time.Now()}
}

// run executes one check, bounded by the checker's timeout.
func (c *Checker) run(ctx context.Context, r registered) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	start := time.Now()
	errCh := make(chan error, 1)
	go func() { errCh <- r.check(ctx) }()

	res := CheckResult{Status: StatusOK, Severity: r.severity.String()}
	select {
	case err := <-errCh:
		if err != nil {
			res.Status = StatusUnhealthy
			res.Message = err.Error()
		}
	case <-ctx.Done():
		res.Status = StatusUnhealthy
		res.Message = "health check timeout"
	}
	res.Duration = time.Since(start)
	return res
}

// DocumentsLoaded returns a check that fails while count reports no
// documents.
func DocumentsLoaded(count func() int) CheckFunc {
	return func(ctx context.Context) error {
		if count() == 0 {
			return ErrNoDocuments
		}
		return nil
	}
}

// LoadedWithin returns a check that fails when the documents were last
// loaded more than maxAge ago.
func LoadedWithin(loadedAt func() time.Time, maxAge time.Duration) CheckFunc {
	return func(ctx context.Context) error {
		if age := time.Since(loadedAt()); age > maxAge {
			return fmt.Errorf("documents last loaded %s ago, limit %s", age.Round(time.Second), maxAge)
		}
		return nil
	}
}
