// Package fixture writes deterministic key-value store fixtures.
//
// A run populates a freshly created store from a named plan and emits a JSON
// oracle describing exactly what was written, so a separate verifier can
// open the store and diff its contents against the oracle. The two sinks are
// kept consistent by construction: both consume the same record sequence in
// the same order, and no oracle is emitted unless every store write
// succeeded.
package fixture

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/jgarzik/testgen/internal/kv"
	"github.com/jgarzik/testgen/internal/plan"
)

// GeneratorName is the generated_by value stamped into every oracle.
const GeneratorName = "testgen"

// Document is the JSON oracle for one run.
//
// GeneratedTime is unix epoch seconds as a decimal string, captured once
// after the store write phase completes. Data lists the written [key, value]
// pairs in exact write order and is [] rather than null when empty.
type Document struct {
	GeneratedBy   string      `json:"generated_by"`
	GeneratedTime string      `json:"generated_time"`
	DataRecords   int         `json:"data_records"`
	Data          [][2]string `json:"data"`
}

// Params configures a single fixture run.
//
// Zero-value fields fall back to production defaults, so tests can inject a
// registry with small plans, an in-memory engine, or a fixed clock without
// touching the run algorithm.
type Params struct {
	// Plan is the plan name to execute.
	Plan string

	// NumericSync enables the engine's stricter durability bookkeeping.
	// It never changes the logical dataset or the oracle.
	NumericSync bool

	// StorePath is where the store is created (truncating anything there).
	StorePath string

	// JSONPath is where the oracle document is written.
	JSONPath string

	// Registry resolves plan names. Defaults to plan.Builtin().
	Registry *plan.Registry

	// Open creates the store. Defaults to the sqlite engine.
	Open kv.OpenFunc

	// GeneratedBy overrides the generated_by stamp. Defaults to GeneratorName.
	GeneratedBy string

	// Now supplies the generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Run executes one fixture run: generate, write-through, emit oracle.
//
// Every failure is a single-shot hard stop. A partially written store is
// left on disk for post-mortem inspection; no oracle is emitted for a
// failed run.
func Run(p Params) error {
	registry := p.Registry
	if registry == nil {
		registry = plan.Builtin()
	}
	open := p.Open
	if open == nil {
		open = kv.OpenSQLite
	}
	generatedBy := p.GeneratedBy
	if generatedBy == "" {
		generatedBy = GeneratorName
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	// Phase 1: generate. Runs to completion before any I/O, so an unknown
	// plan touches neither the store path nor the output path.
	records, err := registry.Generate(p.Plan)
	if err != nil {
		return &RunError{
			Code:    ErrCodeBadPlan,
			Message: "no such plan",
			Plan:    p.Plan,
			Err:     err,
		}
	}

	// Phase 2: write-through.
	if err := writeStore(open, p, records); err != nil {
		return err
	}

	// Phase 3: oracle. Timestamp is captured once, after the store phase.
	doc := Document{
		GeneratedBy:   generatedBy,
		GeneratedTime: strconv.FormatInt(now().Unix(), 10),
		DataRecords:   len(records),
		Data:          make([][2]string, 0, len(records)),
	}
	for _, r := range records {
		doc.Data = append(doc.Data, [2]string{r.Key, r.Value})
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return &RunError{
			Code:    ErrCodeOutputWrite,
			Message: "marshal oracle document",
			Path:    p.JSONPath,
			Err:     err,
		}
	}
	out = append(out, '\n')

	if err := os.WriteFile(p.JSONPath, out, 0o644); err != nil {
		return &RunError{
			Code:    ErrCodeOutputWrite,
			Message: "write oracle document",
			Path:    p.JSONPath,
			Err:     err,
		}
	}

	return nil
}

// writeStore creates the store and writes every record in generator order.
func writeStore(open kv.OpenFunc, p Params, records []plan.Record) error {
	st, err := open(p.StorePath, kv.Options{NumericSync: p.NumericSync})
	if err != nil {
		return &RunError{
			Code:    ErrCodeStoreOpen,
			Message: "create store",
			Path:    p.StorePath,
			Err:     err,
		}
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			slog.Warn("error closing store", "path", p.StorePath, "error", cerr)
		}
	}()

	// A freshly created store must start empty. A non-zero count here is an
	// engine or environment defect worth surfacing loudly, not masking.
	// Only zero-record plans check it: the store's own count is the subject
	// under test, and an empty plan is the only case where nothing else
	// exercises the store at all.
	if len(records) == 0 {
		count, err := st.Count()
		if err != nil {
			return &RunError{
				Code:    ErrCodeConsistency,
				Message: "query record count",
				Path:    p.StorePath,
				Err:     err,
			}
		}
		if count != 0 {
			return &RunError{
				Code:    ErrCodeConsistency,
				Message: "freshly created store reports " + strconv.FormatUint(count, 10) + " records, want 0",
				Path:    p.StorePath,
			}
		}
	}

	for _, r := range records {
		if err := st.Store([]byte(r.Key), []byte(r.Value)); err != nil {
			return &RunError{
				Code:    ErrCodeStoreWrite,
				Message: "store record",
				Key:     r.Key,
				Err:     err,
			}
		}
	}

	return nil
}
