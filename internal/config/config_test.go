// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/zodgen/internal/rewrite"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "schemas.ts", cfg.Output)
	assert.Equal(t, "ts", cfg.Format)
	assert.Equal(t, []string{"."}, cfg.Input.Paths)
	assert.NotEmpty(t, cfg.Input.Include)
	assert.True(t, cfg.Conversion.DefaultValues)
	assert.False(t, cfg.Conversion.ImplicitRequired)
	assert.Equal(t, 4, cfg.Conversion.ComplexityThreshold)
	assert.True(t, cfg.Generation.ExportAllSchemas)
	assert.True(t, cfg.Generation.Endpoints)
	assert.False(t, cfg.Generation.ContinueOnError)
	assert.Equal(t, 500, cfg.Watch.Debounce)
	assert.Empty(t, cfg.Rewrites)
}

func TestLoad_NoConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "zodgen.yaml", `
output: gen/api.ts
input:
  paths: [specs]
  exclude: ["**/drafts/**"]
conversion:
  implicitRequired: true
  defaultValues: false
  strict: true
  complexityThreshold: 8
generation:
  continueOnError: true
  concurrency: 4
rewrites:
  - when: 'format == "binary"'
    set:
      type: string
      minLength: 1
  - when: 'type == "integer" && format == "int64"'
    set: {type: string}
    unset: [minimum]
`)
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gen/api.ts", cfg.Output)
	assert.Equal(t, "ts", cfg.Format, "defaults fill the gaps")
	assert.Equal(t, []string{"specs"}, cfg.Input.Paths)
	assert.Equal(t, []string{"**/drafts/**"}, cfg.Input.Exclude)
	assert.Equal(t, defaultInclude, cfg.Input.Include)
	assert.True(t, cfg.Conversion.ImplicitRequired)
	assert.False(t, cfg.Conversion.DefaultValues)
	assert.True(t, cfg.Conversion.Strict)
	assert.Equal(t, 8, cfg.Conversion.ComplexityThreshold)
	assert.True(t, cfg.Generation.ContinueOnError)
	assert.True(t, cfg.Generation.ExportAllSchemas)
	assert.Equal(t, 4, cfg.Generation.Concurrency)

	require.Len(t, cfg.Rewrites, 2)
	assert.Equal(t, `format == "binary"`, cfg.Rewrites[0].When)
	assert.Equal(t, "string", cfg.Rewrites[0].Set["type"])
	assert.Len(t, cfg.Rewrites[0].Set, 2)
	assert.Equal(t, []string{"minimum"}, cfg.Rewrites[1].Unset)
	assert.NoError(t, cfg.Validate())

	r, err := rewrite.Compile(cfg.Rewrites)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestLoad_JSONConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "zodgen.json", `{
  "output": "api.json",
  "format": "json",
  "conversion": {"readonly": true}
}`)
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "api.json", cfg.Output)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Conversion.Readonly)
	assert.True(t, cfg.Conversion.DefaultValues)
}

func TestLoad_DotPrefixedConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".zodgen.yaml", "output: hidden.ts\n")
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "hidden.ts", cfg.Output)
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom-config.yaml", "output: custom.ts\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.ts", cfg.Output)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "zodgen.yaml", "output: [unclosed\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_ConfigFilePriority(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "zodgen.yaml", "output: first.ts\n")
	writeConfig(t, dir, ".zodgen.yaml", "output: second.ts\n")
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "first.ts", cfg.Output)
	assert.Equal(t, "zodgen.yaml", ConfigFilePath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "format", modify: func(c *Config) { c.Format = "xml" }, fields: []string{"format"}},
		{name: "output", modify: func(c *Config) { c.Output = "" }, fields: []string{"output"}},
		{name: "threshold", modify: func(c *Config) { c.Conversion.ComplexityThreshold = -1 }, fields: []string{"conversion.complexityThreshold"}},
		{name: "concurrency", modify: func(c *Config) { c.Generation.Concurrency = -2 }, fields: []string{"generation.concurrency"}},
		{name: "debounce", modify: func(c *Config) { c.Watch.Debounce = -1 }, fields: []string{"watch.debounce"}},
		{
			name:   "rewrites",
			modify: func(c *Config) { c.Rewrites = []rewrite.Rule{{When: "format ==", Set: map[string]any{"type": "string"}}} },
			fields: []string{"rewrites"},
		},
		{
			name: "multiple",
			modify: func(c *Config) {
				c.Format = "yaml"
				c.Watch.Debounce = -5
			},
			fields: []string{"format", "watch.debounce"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var valErrs ValidationErrors
			require.ErrorAs(t, err, &valErrs)
			var fields []string
			for _, e := range valErrs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "format", Message: "unsupported format"}
	assert.Equal(t, "config validation error: format: unsupported format", err.Error())
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "field1", Message: "error1"},
		{Field: "field2", Message: "error2"},
	}
	assert.Equal(t, "config validation errors:\n  - field1: error1\n  - field2: error2\n", errs.Error())
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())
	assert.Contains(t, errs[:1].Error(), "config validation error:")
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "zodgen.yaml", "output: from-dir.ts\n")

	cfg, err := LoadFromPath(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dir.ts", cfg.Output)

	cfg, err = LoadFromPath(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
