package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/hadronlab/cutconf/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// maxGroupCardinality bounds the number of distinct group labels. Group
// names come from callers, including HTTP queries.
const maxGroupCardinality = 1000

// overflowGroup replaces group labels beyond the cardinality limit.
const overflowGroup = "other"

// Collector is the main orchestrator for all Prometheus metrics in cutconf.
// It manages metric registration and provides a unified interface for
// recording metrics from the reader and the lookup server.
//
// A nil *Collector is valid and records nothing, so components can take an
// optional collector without checking for it.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	lookupMetrics   *LookupMetrics
	documentMetrics *DocumentMetrics
	requestMetrics  *RequestMetrics

	// Cardinality tracking for the group label
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a new registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "cutconf",
//		Subsystem: "reader",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(maxGroupCardinality),
	}

	c.lookupMetrics = NewLookupMetrics(cfg, registry)
	c.documentMetrics = NewDocumentMetrics(cfg, registry)
	c.requestMetrics = NewRequestMetrics(cfg, registry)

	return c
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordLookup records the outcome of one lookup. Any outcome other than
// "hit" also counts a default fallback for group.
//
// Parameters:
//   - kind: Accessor kind ("scalar", "sequence", "value", "array")
//   - outcome: Resolution outcome
//   - group: Top-level key that was looked up
//
// Example:
//
//	collector.RecordLookup("scalar", "no_period", "cuts")
func (c *Collector) RecordLookup(kind, outcome, group string) {
	if !c.enabled() {
		return
	}

	c.lookupMetrics.RecordLookup(kind, outcome)
	if outcome == "hit" {
		return
	}
	if !c.cardinalityLimiter.Allow(group) {
		group = overflowGroup
	}
	c.lookupMetrics.RecordDefault(group)
}

// SetDocuments updates the number of loaded documents.
func (c *Collector) SetDocuments(n int) {
	if !c.enabled() {
		return
	}

	c.documentMetrics.SetDocuments(n)
}

// RecordReload records a reload attempt and, on success, the resulting
// document count.
func (c *Collector) RecordReload(err error, documents int) {
	if !c.enabled() {
		return
	}

	c.documentMetrics.RecordReload(err == nil, time.Now())
	if err == nil {
		c.documentMetrics.SetDocuments(documents)
	}
}

// RecordRequest records a request served by the lookup server.
//
// Parameters:
//   - endpoint: Endpoint name (e.g., "lookup")
//   - status: HTTP status code
//   - duration: Time taken to serve the request
func (c *Collector) RecordRequest(endpoint string, status int, duration time.Duration) {
	if !c.enabled() {
		return
	}

	c.requestMetrics.RecordRequest(endpoint, strconv.Itoa(status), duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label value is allowed. Returns true if the value
// already exists or if the cardinality limit has not been reached yet.
func (cl *CardinalityLimiter) Allow(label string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[label]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[label]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[label] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
