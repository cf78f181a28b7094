package reader

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hadronlab/cutconf/pkg/config"
	"github.com/hadronlab/cutconf/pkg/node"
	"github.com/hadronlab/cutconf/pkg/resolve"
	"github.com/hadronlab/cutconf/pkg/telemetry/metrics"
)

// ErrNoSources is returned when a reader is opened, or reloaded, without
// any source paths.
var ErrNoSources = errors.New("no source documents")

// Options configures a Reader. The zero value uses the default key names,
// slog.Default and no metrics.
type Options struct {
	// PassThroughKey is the dependent key meaning "no dependency".
	// Default: "single"
	PassThroughKey string

	// BoundMinKey and BoundMaxKey name the bounds of mapping-shaped run
	// intervals. Default: "min", "max"
	BoundMinKey string
	BoundMaxKey string

	Logger  *slog.Logger
	Metrics *metrics.Collector
}

// OptionsFromConfig builds Options from the reader section of the
// configuration.
func OptionsFromConfig(cfg *config.ReaderConfig, logger *slog.Logger, collector *metrics.Collector) Options {
	return Options{
		PassThroughKey: cfg.PassThroughKey,
		BoundMinKey:    cfg.BoundMinKey,
		BoundMaxKey:    cfg.BoundMaxKey,
		Logger:         logger,
		Metrics:        collector,
	}
}

func (o Options) keys() resolve.Keys {
	keys := resolve.DefaultKeys()
	if o.PassThroughKey != "" {
		keys.PassThrough = o.PassThroughKey
	}
	if o.BoundMinKey != "" {
		keys.Bounds.Min = o.BoundMinKey
	}
	if o.BoundMaxKey != "" {
		keys.Bounds.Max = o.BoundMaxKey
	}
	return keys
}

// documentSet is an immutable snapshot of the loaded documents.
type documentSet struct {
	docs     []*node.Node
	loadedAt time.Time
}

// Reader resolves lookups against a set of documents. It is safe for
// concurrent use.
type Reader struct {
	keys    resolve.Keys
	sources []string
	logger  *slog.Logger
	metrics *metrics.Collector

	current atomic.Pointer[documentSet]

	// reloadMu serializes reloads.
	reloadMu sync.Mutex
}

// New creates a Reader over documents that are already decoded. Such a
// reader has no sources and cannot be reloaded.
func New(opts Options, docs ...*node.Node) *Reader {
	r := newReader(opts, nil)
	r.store(docs)
	return r
}

// Open loads the documents at paths, in precedence order.
func Open(opts Options, paths ...string) (*Reader, error) {
	if len(paths) == 0 {
		return nil, ErrNoSources
	}

	r := newReader(opts, paths)
	docs, err := loadAll(paths)
	if err != nil {
		return nil, err
	}
	r.store(docs)

	r.logger.Info("calibration documents loaded",
		"sources", paths,
		"documents", len(docs),
	)

	return r, nil
}

func newReader(opts Options, paths []string) *Reader {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		keys:    opts.keys(),
		sources: append([]string(nil), paths...),
		logger:  logger.With("component", "reader"),
		metrics: opts.Metrics,
	}
}

func loadAll(paths []string) ([]*node.Node, error) {
	docs := make([]*node.Node, 0, len(paths))
	for _, p := range paths {
		doc, err := node.DecodeFile(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *Reader) store(docs []*node.Node) {
	r.current.Store(&documentSet{
		docs:     append([]*node.Node(nil), docs...),
		loadedAt: time.Now(),
	})
	r.metrics.SetDocuments(len(docs))
}

// Reload re-reads every source. If any source fails to load, the previous
// documents stay in place and the error is returned.
func (r *Reader) Reload() error {
	if len(r.sources) == 0 {
		return ErrNoSources
	}

	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	start := time.Now()
	docs, err := loadAll(r.sources)
	r.metrics.RecordReload(err, len(docs))
	if err != nil {
		r.logger.Error("calibration reload failed, keeping previous documents",
			"error", err,
		)
		return fmt.Errorf("failed to reload calibration documents: %w", err)
	}
	r.store(docs)

	r.logger.Info("calibration documents reloaded",
		"documents", len(docs),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

// Sources returns the source paths in precedence order.
func (r *Reader) Sources() []string {
	return append([]string(nil), r.sources...)
}

// Documents returns the current documents in precedence order.
func (r *Reader) Documents() []*node.Node {
	return append([]*node.Node(nil), r.current.Load().docs...)
}

// LoadedAt returns when the current documents were loaded.
func (r *Reader) LoadedAt() time.Time {
	return r.current.Load().loadedAt
}

// Keys returns the key names the reader resolves with.
func (r *Reader) Keys() resolve.Keys {
	return r.keys
}
