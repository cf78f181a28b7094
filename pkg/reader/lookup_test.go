package reader

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hadronlab/cutconf/pkg/config"
	"github.com/hadronlab/cutconf/pkg/node"
	"github.com/hadronlab/cutconf/pkg/resolve"
	"github.com/hadronlab/cutconf/pkg/telemetry/metrics"
)

func openFixture(t *testing.T, opts Options) *Reader {
	t.Helper()
	r, err := Open(opts, "testdata/cuts.yaml")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return r
}

func mustDecode(t *testing.T, doc string) *node.Node {
	t.Helper()
	n, err := node.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return n
}

func cutQuery(dependent string, run, probe int64) Query {
	return Query{Group: "cuts", Period: "runs", Dependent: dependent, Value: "vals", Run: run, Probe: probe}
}

func TestLookupSlice_Walkthrough(t *testing.T) {
	r := openFixture(t, Options{})
	def := []float64{-20, 20}

	tests := []struct {
		name  string
		query Query
		want  []float64
	}{
		{"first period, no pid list", cutQuery("pid", 4768, 0), []float64{-13, 12}},
		{"second period, no pid list", cutQuery("pid", 5423, 0), []float64{-18, 10}},
		{"pid 11", cutQuery("pid", 6143, 11), []float64{-5, 5}},
		{"pid 211", cutQuery("pid", 6143, 211), []float64{-10, 10}},
		{"sector 5", cutQuery("sector", 6143, 5), []float64{-7, 7}},
		{"unlisted pid falls back to period", cutQuery("pid", 6143, 2212), []float64{-15, 15}},
		{"unknown dependent key falls back to period", cutQuery("layer", 6143, 1), []float64{-15, 15}},
		{"pass-through", cutQuery("single", 6143, 0), []float64{-15, 15}},
		{"run outside every period", cutQuery("pid", 4, 0), def},
		{"run in a gap between periods", cutQuery("pid", 5800, 11), def},
		{"unknown group", Query{Group: "timing", Period: "runs", Value: "vals", Run: 6143}, def},
		{"unknown value key", Query{Group: "cuts", Period: "runs", Dependent: "pid", Value: "edges", Run: 6143, Probe: 11}, def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LookupSlice(r, tt.query, def)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LookupSlice(%s) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestLookup_PassThroughIndexesByProbe(t *testing.T) {
	r := openFixture(t, Options{})

	low := Lookup(r, cutQuery("single", 6143, 0), -20.0)
	high := Lookup(r, cutQuery("single", 6143, 1), 20.0)
	if low != -15 || high != 15 {
		t.Errorf("low/high = %v/%v, want -15/15", low, high)
	}

	if got := Lookup(r, cutQuery("single", 6143, 2), 20.0); got != 20 {
		t.Errorf("index past the pair = %v, want default 20", got)
	}
	if got := Lookup(r, cutQuery("single", 6143, -1), 20.0); got != 20 {
		t.Errorf("negative index = %v, want default 20", got)
	}
	if got := Lookup(r, cutQuery("single", 6143, math.MaxInt64), 20.0); got != 20 {
		t.Errorf("huge index = %v, want default 20", got)
	}
}

func TestLookup_ScalarValues(t *testing.T) {
	doc := mustDecode(t, `
timing:
  - runs: {min: 100, max: 200}
    offset: 1.25
    sector:
      - sector: 2
        offset: 3
  - runs: {min: 300, max: 400}
    offset: late
`)
	r := New(Options{}, doc)
	q := Query{Group: "timing", Period: "runs", Dependent: "sector", Value: "offset", Run: 150, Probe: 1}

	if got := Lookup(r, q, 0.0); got != 1.25 {
		t.Errorf("fallback offset = %v, want 1.25", got)
	}

	q.Probe = 2
	if got := Lookup(r, q, 0); got != 3 {
		t.Errorf("sector 2 offset as int = %v, want 3", got)
	}
	if got := Lookup(r, q, float32(0)); got != 3 {
		t.Errorf("sector 2 offset as float32 = %v, want 3", got)
	}

	q.Probe = 1
	if got := Lookup(r, q, 7); got != 7 {
		t.Errorf("fractional offset as int = %v, want default 7", got)
	}

	q.Run = 350
	if got := Lookup(r, q, "none"); got != "late" {
		t.Errorf("string offset = %q, want %q", got, "late")
	}
	if got := Lookup(r, q, 9.5); got != 9.5 {
		t.Errorf("string offset as float = %v, want default 9.5", got)
	}
}

func TestLookupSlice_ConversionIsAtomic(t *testing.T) {
	r := New(Options{}, mustDecode(t, `
cuts:
  - runs: [1, 10]
    vals: [1, two, 3]
`))
	def := []int{0, 0}
	got := LookupSlice(r, cutQuery("single", 5, 0), def)
	if diff := cmp.Diff(def, got); diff != "" {
		t.Errorf("LookupSlice() mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupSlice_EmptySequence(t *testing.T) {
	r := New(Options{}, mustDecode(t, `
cuts:
  - runs: [1, 10]
    vals: []
`))
	got := LookupSlice(r, cutQuery("single", 5, 0), []float64{-1, 1})
	if got == nil || len(got) != 0 {
		t.Errorf("LookupSlice() = %#v, want empty non-nil slice", got)
	}
}

func TestLookup_CustomKeys(t *testing.T) {
	r := New(Options{PassThroughKey: "any", BoundMinKey: "from", BoundMaxKey: "to"}, mustDecode(t, `
cuts:
  - runs: {from: 10, to: 20}
    vals: [-1, 1]
`))

	if got := LookupSlice(r, cutQuery("any", 15, 0), []float64(nil)); len(got) != 2 {
		t.Errorf("custom pass-through lookup = %v, want [-1 1]", got)
	}
	if got := Lookup(r, cutQuery("any", 15, 1), 0); got != 1 {
		t.Errorf("custom pass-through index = %v, want 1", got)
	}
	// "single" is an ordinary dependent key here: no list, so the period
	// value is used without probe indexing.
	if got := Lookup(r, cutQuery("single", 15, 1), 0); got != 0 {
		t.Errorf("scalar read of a sequence = %v, want default 0", got)
	}
}

func TestLookup_MultipleDocuments(t *testing.T) {
	primary := mustDecode(t, `
cuts:
  - runs: [6000, 6200]
    vals: [-1, 1]
energy:
  - runs: [1, 2]
    scale: high
`)
	fallback := mustDecode(t, `
cuts:
  - runs: [1, 5999]
    vals: [-2, 2]
energy:
  - runs: [1, 2]
    scale: 1.02
myInt: 8
`)
	r := New(Options{}, primary, fallback)

	if got := LookupSlice(r, cutQuery("pid", 6100, 11), []float64(nil)); !cmp.Equal(got, []float64{-1, 1}) {
		t.Errorf("primary document = %v, want [-1 1]", got)
	}
	if got := LookupSlice(r, cutQuery("pid", 100, 11), []float64(nil)); !cmp.Equal(got, []float64{-2, 2}) {
		t.Errorf("period only in fallback = %v, want [-2 2]", got)
	}

	q := Query{Group: "energy", Period: "runs", Value: "scale", Run: 1}
	if got := Lookup(r, q, 0.0); got != 1.02 {
		t.Errorf("unconvertible value in primary = %v, want 1.02 from fallback", got)
	}
	if got := Value(r, "myInt", 0); got != 8 {
		t.Errorf("flat key only in fallback = %v, want 8", got)
	}
}

func TestFind_Outcomes(t *testing.T) {
	r := openFixture(t, Options{})

	tests := []struct {
		name  string
		query Query
		want  resolve.Outcome
	}{
		{"hit", cutQuery("pid", 6143, 11), resolve.OutcomeHit},
		{"group missing", Query{Group: "nope", Period: "runs", Value: "vals"}, resolve.OutcomeGroupMissing},
		{"no period", cutQuery("pid", 4, 0), resolve.OutcomeNoPeriod},
		{"no value", Query{Group: "cuts", Period: "runs", Value: "edges", Run: 4800}, resolve.OutcomeNoValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := FindSlice[float64](r, tt.query); got != tt.want {
				t.Errorf("FindSlice() outcome = %s, want %s", got, tt.want)
			}
		})
	}

	if _, got := FindSlice[bool](r, cutQuery("pid", 6143, 11)); got != resolve.OutcomeConversion {
		t.Errorf("FindSlice[bool]() outcome = %s, want %s", got, resolve.OutcomeConversion)
	}
	if _, got := Find[float64](r, cutQuery("pid", 6143, 11)); got != resolve.OutcomeConversion {
		t.Errorf("Find() of a pid sequence outcome = %s, want %s", got, resolve.OutcomeConversion)
	}
}

func TestReader_Resolve(t *testing.T) {
	r := openFixture(t, Options{})

	res := r.Resolve(cutQuery("pid", 6143, 211))
	if res.Outcome != resolve.OutcomeHit || res.Match != resolve.DependentExact {
		t.Fatalf("Resolve() = %s/%s, want hit/exact", res.Outcome, res.Match)
	}
	if diff := cmp.Diff([]any{-10.0, 10.0}, res.Node.Interface()); diff != "" {
		t.Errorf("Resolve() node mismatch (-want +got):\n%s", diff)
	}

	res = r.Resolve(cutQuery("pid", 4, 0))
	if res.Outcome != resolve.OutcomeNoPeriod || res.Node != nil {
		t.Errorf("Resolve() miss = %s with node %v, want no_period and nil", res.Outcome, res.Node)
	}
}

func TestValueAndArray(t *testing.T) {
	r := openFixture(t, Options{})

	if got := Value(r, "myInt", 0); got != 4 {
		t.Errorf("myInt = %d, want 4", got)
	}
	if got := Value(r, "myInt", 0.0); got != 4 {
		t.Errorf("myInt as float = %v, want 4", got)
	}
	if got := Value(r, "myDouble", 0.0); got != 2.5 {
		t.Errorf("myDouble = %v, want 2.5", got)
	}
	if got := Value(r, "myDouble", int64(-1)); got != -1 {
		t.Errorf("myDouble as int = %d, want default -1", got)
	}
	if got := Value(r, "myString", ""); got != "hello" {
		t.Errorf("myString = %q, want %q", got, "hello")
	}
	if got := Value(r, "missing", "dflt"); got != "dflt" {
		t.Errorf("missing = %q, want default", got)
	}
	if got := Value(r, "myIntVector", 0); got != 0 {
		t.Errorf("sequence read as scalar = %d, want default 0", got)
	}

	if diff := cmp.Diff([]int{1, 2, 3}, Array(r, "myIntVector", []int{})); diff != "" {
		t.Errorf("myIntVector mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1.5, 2.5}, Array(r, "myDoubleVector", []float64{})); diff != "" {
		t.Errorf("myDoubleVector mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, Array(r, "myStringVector", []string{})); diff != "" {
		t.Errorf("myStringVector mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{9}, Array(r, "myDoubleVector", []int{9})); diff != "" {
		t.Errorf("fractional array as int mismatch (-want +got):\n%s", diff)
	}
	if got := Array[int](r, "myInt", nil); got != nil {
		t.Errorf("scalar read as array = %v, want nil default", got)
	}
}

func TestLookup_EmptyReader(t *testing.T) {
	r := New(Options{})
	if got := Lookup(r, cutQuery("pid", 6143, 11), 1.5); got != 1.5 {
		t.Errorf("Lookup() on empty reader = %v, want default", got)
	}
	if got := Value(r, "myInt", 3); got != 3 {
		t.Errorf("Value() on empty reader = %v, want default", got)
	}
}

func TestLookup_RecordsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true}, prometheus.NewRegistry())

	r := openFixture(t, Options{Logger: logger, Metrics: collector})

	LookupSlice(r, cutQuery("pid", 6143, 11), []float64{-20, 20})
	LookupSlice(r, cutQuery("pid", 4, 0), []float64{-20, 20})
	Value(r, "missing", 0)

	out := buf.String()
	if !strings.Contains(out, "lookup using default") || !strings.Contains(out, "outcome=no_period") {
		t.Errorf("expected debug line for the missed period, got:\n%s", out)
	}
	if !strings.Contains(out, "key=missing") {
		t.Errorf("expected debug line for the missing key, got:\n%s", out)
	}

	// The hit and the two misses, each counted once.
	count, err := testutil.GatherAndCount(collector.Registry(), "cutconf_reader_lookups_total")
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 lookup series, got %d", count)
	}

	expected := `
# HELP cutconf_reader_defaults_total Total number of lookups answered with the caller's default
# TYPE cutconf_reader_defaults_total counter
cutconf_reader_defaults_total{group="cuts"} 1
cutconf_reader_defaults_total{group="missing"} 1
`
	if err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected), "cutconf_reader_defaults_total"); err != nil {
		t.Errorf("unexpected defaults metric: %v", err)
	}
}
