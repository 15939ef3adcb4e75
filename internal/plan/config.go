package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines additional plans loaded from a YAML file.
//
// Example:
//
//	plans:
//	  - name: small
//	    count: 25
//	    key_format: "key %d"
//	    value_format: "value %d"
//	  - name: handpicked
//	    records:
//	      - key: "a"
//	        value: "1"
//
// A plan definition either synthesizes records from a count and format
// strings, or lists explicit records; the two forms are mutually exclusive.
// Loaded plans are as deterministic as the built-ins: the definition fully
// determines the output.
type Config struct {
	Plans []PlanDef `yaml:"plans"`
}

// PlanDef is one custom plan definition.
type PlanDef struct {
	// Name registers the plan. Must not collide with built-in names.
	Name string `yaml:"name"`

	// Count synthesizes records for indices 0..Count-1.
	Count int `yaml:"count,omitempty"`

	// KeyFormat and ValueFormat are fmt patterns applied to the index.
	// Default to "key %d" and "value %d".
	KeyFormat   string `yaml:"key_format,omitempty"`
	ValueFormat string `yaml:"value_format,omitempty"`

	// Records lists the plan output verbatim. Mutually exclusive with Count.
	Records []RecordDef `yaml:"records,omitempty"`
}

// RecordDef is an explicit record in a plan definition.
type RecordDef struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// LoadConfig reads and validates a plan config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse plan config %s: %w", path, err)
	}

	for i, def := range cfg.Plans {
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("plan config %s: plans[%d]: %w", path, i, err)
		}
	}

	return &cfg, nil
}

func (d *PlanDef) validate() error {
	if d.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if d.Count < 0 {
		return fmt.Errorf("plan %q: count must not be negative", d.Name)
	}
	if d.Count > 0 && len(d.Records) > 0 {
		return fmt.Errorf("plan %q: count and records are mutually exclusive", d.Name)
	}
	return nil
}

// generate materializes the plan definition.
func (d PlanDef) generate() []Record {
	if len(d.Records) > 0 {
		records := make([]Record, 0, len(d.Records))
		for _, rd := range d.Records {
			records = append(records, Record{Key: rd.Key, Value: rd.Value})
		}
		return records
	}

	keyFormat := d.KeyFormat
	if keyFormat == "" {
		keyFormat = DefaultKeyFormat
	}
	valueFormat := d.ValueFormat
	if valueFormat == "" {
		valueFormat = DefaultValueFormat
	}
	return Synthesize(d.Count, keyFormat, valueFormat)
}

// Merge registers every plan in cfg. Name collisions (with built-ins or
// between definitions) fail the whole merge.
func (r *Registry) Merge(cfg *Config) error {
	for _, def := range cfg.Plans {
		if err := r.Register(def.Name, def.generate); err != nil {
			return err
		}
	}
	return nil
}
