package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hadronlab/cutconf/pkg/reader"
	"github.com/hadronlab/cutconf/pkg/resolve"
	"github.com/hadronlab/cutconf/pkg/telemetry/logging"
)

// Endpoint paths.
const (
	LookupPath = "/lookup"
	ValuePath  = "/value"
)

// LookupResponse is the body of a successful /lookup or /value request.
type LookupResponse struct {
	Value       any    `json:"value"`
	Outcome     string `json:"outcome"`
	DefaultUsed bool   `json:"default_used"`
}

// ErrorResponse is the body of a failed request. Outcome is set when the
// lookup ran but found nothing and no default was given.
type ErrorResponse struct {
	Error   string `json:"error"`
	Outcome string `json:"outcome,omitempty"`
}

// handleLookup serves a two-stage lookup:
//
//	GET /lookup?group=cuts&period=runs&dependent=pid&value=vals&run=6143&probe=11&array=true
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	params := r.URL.Query()

	q := reader.Query{
		Group:     params.Get("group"),
		Period:    params.Get("period"),
		Dependent: params.Get("dependent"),
		Value:     params.Get("value"),
	}
	if q.Group == "" {
		writeError(w, http.StatusBadRequest, "missing required parameter: group")
		return
	}
	if q.Period == "" {
		q.Period = "runs"
	}
	if q.Value == "" {
		q.Value = "vals"
	}

	var err error
	if q.Run, err = intParam(params, "run"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if q.Probe, err = intParam(params, "probe"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := logging.WithRun(r.Context(), q.Run)
	s.logger.DebugContext(ctx, "lookup", "query", q.String())

	s.evaluate(w, params, reader.Request{Query: &q})
}

// handleValue serves a flat read of a top-level key:
//
//	GET /value?key=myIntVector&type=int&array=true
func (s *Server) handleValue(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	params := r.URL.Query()

	key := params.Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing required parameter: key")
		return
	}

	s.evaluate(w, params, reader.Request{Key: key})
}

// evaluate completes req from the type, array and default parameters and
// writes the response.
func (s *Server) evaluate(w http.ResponseWriter, params url.Values, req reader.Request) {
	req.Type = reader.ValueType(params.Get("type"))
	if v := params.Get("array"); v != "" {
		array, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid array parameter %q", v))
			return
		}
		req.Array = array
	}
	if params.Has("default") {
		def := params.Get("default")
		req.Default = &def
	}

	resp, err := s.opts.Reader.Evaluate(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if resp.Outcome != resolve.OutcomeHit && !resp.DefaultUsed {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "no value found",
			Outcome: string(resp.Outcome),
		})
		return
	}

	writeJSON(w, http.StatusOK, LookupResponse{
		Value:       resp.Value,
		Outcome:     string(resp.Outcome),
		DefaultUsed: resp.DefaultUsed,
	})
}

// intParam parses an optional integer parameter; absent means zero.
func intParam(params url.Values, name string) (int64, error) {
	v := params.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter %q", name, v)
	}
	return n, nil
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeJSON encodes v before committing the status, so a value JSON cannot
// represent (NaN or an infinity) answers 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{
			Error: fmt.Sprintf("value cannot be encoded as JSON: %v", err),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
