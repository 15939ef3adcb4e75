package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Synthesized(t *testing.T) {
	path := writeConfig(t, `
plans:
  - name: small
    count: 25
  - name: fancy
    count: 2
    key_format: "k%d"
    value_format: "v%d"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Plans, 2)

	r := Builtin()
	require.NoError(t, r.Merge(cfg))

	records, err := r.Generate("small")
	require.NoError(t, err)
	require.Len(t, records, 25)
	assert.Equal(t, Record{Key: "key 0", Value: "value 0"}, records[0])
	assert.Equal(t, Record{Key: "key 24", Value: "value 24"}, records[24])

	records, err = r.Generate("fancy")
	require.NoError(t, err)
	assert.Equal(t, []Record{{Key: "k0", Value: "v0"}, {Key: "k1", Value: "v1"}}, records)
}

func TestLoadConfig_ExplicitRecords(t *testing.T) {
	path := writeConfig(t, `
plans:
  - name: handpicked
    records:
      - key: "a"
        value: "1"
      - key: "b"
        value: "2"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	r := Builtin()
	require.NoError(t, r.Merge(cfg))

	records, err := r.Generate("handpicked")
	require.NoError(t, err)
	assert.Equal(t, []Record{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, records)
}

func TestLoadConfig_Deterministic(t *testing.T) {
	path := writeConfig(t, `
plans:
  - name: small
    count: 10
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	r := Builtin()
	require.NoError(t, r.Merge(cfg))

	first, err := r.Generate("small")
	require.NoError(t, err)
	second, err := r.Generate("small")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "plans: [this is: not: yaml")
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing name",
			content: `
plans:
  - count: 5
`,
		},
		{
			name: "negative count",
			content: `
plans:
  - name: bad
    count: -1
`,
		},
		{
			name: "count and records",
			content: `
plans:
  - name: bad
    count: 1
    records:
      - key: "a"
        value: "1"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
		})
	}
}

func TestMerge_ReservedName(t *testing.T) {
	path := writeConfig(t, `
plans:
  - name: basic
    count: 1
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	err = Builtin().Merge(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}
