// Package plan generates deterministic key/value datasets for store fixtures.
//
// A plan is a pure function from a name to an ordered sequence of records.
// Re-invoking a plan always yields byte-identical output: the JSON oracle
// emitted alongside a store must match the store exactly, so plans never
// consult wall-clock time or any external state.
package plan

import (
	"fmt"
	"sort"
)

// BasicRecordCount is the number of records the built-in "basic" plan emits.
const BasicRecordCount = 10001

// Built-in key/value formats. The index is substituted with %d.
const (
	DefaultKeyFormat   = "key %d"
	DefaultValueFormat = "value %d"
)

// Record is an ordered key/value pair produced by a plan.
// Records are created by the generator and read-only afterward.
type Record struct {
	Key   string
	Value string
}

// Func produces the full record sequence for one plan.
// Implementations must be deterministic and side-effect-free.
type Func func() []Record

// UnknownPlanError reports a plan name with no registered generator.
type UnknownPlanError struct {
	Name string
}

func (e *UnknownPlanError) Error() string {
	return fmt.Sprintf("unknown test plan %q", e.Name)
}

// Registry maps plan names to generator functions.
type Registry struct {
	plans map[string]Func
}

// Builtin returns a registry holding the built-in plans.
//
// Plans:
//   - "basic": BasicRecordCount records, key "key {i}" / value "value {i}",
//     in strictly increasing index order. Exercises bulk insertion and
//     range coverage of the target store.
//   - "empty": zero records. Exercises store initialization without data.
func Builtin() *Registry {
	r := &Registry{plans: map[string]Func{}}
	r.plans["basic"] = func() []Record {
		return Synthesize(BasicRecordCount, DefaultKeyFormat, DefaultValueFormat)
	}
	r.plans["empty"] = func() []Record {
		return []Record{}
	}
	return r
}

// Synthesize builds count records by formatting the 0-based index into
// keyFormat and valueFormat.
func Synthesize(count int, keyFormat, valueFormat string) []Record {
	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, Record{
			Key:   fmt.Sprintf(keyFormat, i),
			Value: fmt.Sprintf(valueFormat, i),
		})
	}
	return records
}

// Register adds a plan under the given name.
// Returns an error if the name is already taken.
func (r *Registry) Register(name string, fn Func) error {
	if _, exists := r.plans[name]; exists {
		return fmt.Errorf("plan %q is already registered", name)
	}
	r.plans[name] = fn
	return nil
}

// Generate runs the named plan and returns its record sequence.
// Returns *UnknownPlanError if the name has no registered generator.
func (r *Registry) Generate(name string) ([]Record, error) {
	fn, ok := r.plans[name]
	if !ok {
		return nil, &UnknownPlanError{Name: name}
	}
	return fn(), nil
}

// Names returns the registered plan names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.plans))
	for name := range r.plans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
