package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Catalogue tests
// ----------------------------------------------------------------------------

func TestLoadCatalogue(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectError bool
		endpoints   int
	}{
		{
			name: "valid catalogue",
			content: `
title: Yandex Translate API
version: "1.5"
endpoints:
  - operation: detect
    http_methods: [GET, POST]
  - operation: translate
    http_methods: [POST]
`,
			endpoints: 2,
		},
		{
			name:        "invalid yaml",
			content:     "endpoints: [",
			expectError: true,
		},
		{
			name: "missing operation",
			content: `
endpoints:
  - category: Detection
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "endpoints.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			cat, err := LoadCatalogue(path)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, cat.Endpoints, tt.endpoints)
		})
	}
}

func TestLoadCatalogueMissingFile(t *testing.T) {
	_, err := LoadCatalogue(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalogue")
}

func TestBundledCatalogue(t *testing.T) {
	cat, err := LoadCatalogue(filepath.Join("testdata", "endpoints.yaml"))
	require.NoError(t, err)

	var ops []string
	for _, ep := range cat.Endpoints {
		ops = append(ops, ep.Operation)
	}
	assert.Equal(t, []string{"getLangs", "detect", "translate"}, ops)
}

// AST analysis tests
// ----------------------------------------------------------------------------

func TestScanClientMethods(t *testing.T) {
	methods, err := ScanClientMethods("testdata")
	require.NoError(t, err)

	var names []string
	for _, m := range methods {
		names = append(names, m.Name)
	}
	require.Equal(t, []string{"GetLangs", "GetLangsWithContext", "Translate"}, names)

	got := methods[1]
	assert.Equal(t, "sample_client.go", got.File)
	assert.Equal(t, []string{"ctx context.Context", "update bool"}, got.Parameters)
	assert.Equal(t, []string{"*Langs", "error"}, got.Returns)
}

func TestScanClientMethodsInvalidSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.go"), []byte("package x\nfunc ("), 0o600))

	_, err := ScanClientMethods(dir)
	assert.Error(t, err)
}

func TestMethodNaming(t *testing.T) {
	tests := []struct {
		in, base string
	}{
		{"Translate", "Translate"},
		{"TranslateWithContext", "Translate"},
		{"TranslateWithOptions", "Translate"},
		{"GetLangsWithContext", "GetLangs"},
		{"OK", "OK"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.base, methodBase(tt.in), "methodBase(%q)", tt.in)
	}

	assert.Equal(t, "GetLangs", operationMethod("getLangs"))
	assert.Empty(t, operationMethod(""))
}

// Coverage tests
// ----------------------------------------------------------------------------

func TestAnalyze(t *testing.T) {
	cat := &Catalogue{
		Title:   "Yandex Translate API",
		Version: "1.5",
		Endpoints: []Endpoint{
			{Operation: "getLangs", Category: "Languages"},
			{Operation: "detect", Category: "Detection"},
			{Operation: "translate", Category: "Translation"},
		},
	}
	methods := []MethodInfo{
		{Name: "GetLangs"},
		{Name: "GetLangsWithContext"},
		{Name: "OK"},
		{Name: "Translate"},
	}

	cov := Analyze(cat, methods)

	assert.Len(t, cov.Implemented["getLangs"], 2)
	require.Len(t, cov.Missing, 1)
	assert.Equal(t, "detect", cov.Missing[0].Operation)
	require.Len(t, cov.Extra, 1)
	assert.Equal(t, "OK", cov.Extra[0].Name)
	assert.InDelta(t, 66.67, cov.Percent(), 0.01)
}

func TestPercentEmptyCatalogue(t *testing.T) {
	cov := Analyze(&Catalogue{}, nil)
	assert.Zero(t, cov.Percent())
}

func TestRenderReport(t *testing.T) {
	cat := &Catalogue{
		Title:   "Yandex Translate API",
		Version: "1.5",
		Endpoints: []Endpoint{
			{Operation: "detect", Category: "Detection", HTTPMethods: []string{"GET", "POST"}},
			{Operation: "translate", Category: "Translation", HTTPMethods: []string{"POST"}},
		},
	}
	methods := []MethodInfo{
		{Name: "Detect", File: "detect.go", Line: 42, Parameters: []string{"text string"}, Returns: []string{"*Detection", "error"}},
		{Name: "Format", File: "yatranslate.go", Line: 10, Returns: []string{"Format"}},
	}

	report := string(RenderReport(Analyze(cat, methods), time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))

	for _, want := range []string{
		"# API Coverage Report",
		"- API: Yandex Translate API v1.5",
		"- Generated: 2026-01-02T03:04:05Z",
		"- Coverage: 50.0% (1/2 endpoints)",
		"| `detect` | Detection | GET, POST | Implemented | `Detect` (detect.go:42) |",
		"| `translate` | Translation | POST | Missing |  |",
		"## Additional Client Methods",
		"- `Format()` returns `(Format)`",
	} {
		assert.Contains(t, report, want)
	}
}
