//go:generate go run .

package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	catalogueFile = "tools/testdata/endpoints.yaml"
	reportFile    = "api_coverage_report.md"
)

// Catalogue is the list of endpoints published by the Yandex Translate API.
type Catalogue struct {
	Title     string     `yaml:"title"`
	Version   string     `yaml:"version"`
	Endpoints []Endpoint `yaml:"endpoints"`
}

// Endpoint is a single API operation, e.g. "getLangs".
type Endpoint struct {
	Operation   string   `yaml:"operation"`
	HTTPMethods []string `yaml:"http_methods"`
	Category    string   `yaml:"category"`
	Summary     string   `yaml:"summary"`
}

// MethodInfo describes an exported *Client method found in the sources.
type MethodInfo struct {
	Name       string
	Parameters []string
	Returns    []string
	File       string
	Line       int
}

// Coverage maps catalogue endpoints to the methods implementing them.
type Coverage struct {
	Catalogue   *Catalogue
	Implemented map[string][]MethodInfo // keyed by operation
	Missing     []Endpoint
	Extra       []MethodInfo // methods not tied to any endpoint
}

// Percent returns the share of covered endpoints.
func (c *Coverage) Percent() float64 {
	total := len(c.Catalogue.Endpoints)
	if total == 0 {
		return 0
	}
	return float64(total-len(c.Missing)) / float64(total) * 100
}

// LoadCatalogue reads the endpoint catalogue from a YAML file.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	var cat Catalogue
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue: %w", err)
	}

	for i, ep := range cat.Endpoints {
		if ep.Operation == "" {
			return nil, fmt.Errorf("endpoint #%d has no operation", i)
		}
	}

	return &cat, nil
}

// ScanClientMethods parses every non-test Go file in dir and collects the
// exported methods declared on *Client.
func ScanClientMethods(dir string) ([]MethodInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}

	var methods []MethodInfo
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		found, err := parseGoFile(file)
		if err != nil {
			return nil, err
		}
		methods = append(methods, found...)
	}

	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })
	return methods, nil
}

func parseGoFile(filename string) ([]MethodInfo, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	var methods []MethodInfo
	ast.Inspect(node, func(n ast.Node) bool {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || !isClientMethod(fn) {
			return true
		}
		methods = append(methods, methodInfo(fn, fset, filename))
		return true
	})

	return methods, nil
}

func isClientMethod(fn *ast.FuncDecl) bool {
	if fn.Recv == nil || len(fn.Recv.List) == 0 || !fn.Name.IsExported() {
		return false
	}
	star, ok := fn.Recv.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	ident, ok := star.X.(*ast.Ident)
	return ok && ident.Name == "Client"
}

func methodInfo(fn *ast.FuncDecl, fset *token.FileSet, filename string) MethodInfo {
	info := MethodInfo{
		Name: fn.Name.Name,
		File: filepath.Base(filename),
		Line: fset.Position(fn.Pos()).Line,
	}

	for _, field := range fn.Type.Params.List {
		typ := typeToString(field.Type)
		if len(field.Names) == 0 {
			info.Parameters = append(info.Parameters, typ)
			continue
		}
		for _, name := range field.Names {
			info.Parameters = append(info.Parameters, name.Name+" "+typ)
		}
	}

	if fn.Type.Results != nil {
		for _, field := range fn.Type.Results.List {
			info.Returns = append(info.Returns, typeToString(field.Type))
		}
	}

	return info
}

func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeToString(t.X)
	case *ast.SelectorExpr:
		return typeToString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		return "[]" + typeToString(t.Elt)
	case *ast.MapType:
		return "map[" + typeToString(t.Key) + "]" + typeToString(t.Value)
	case *ast.Ellipsis:
		return "..." + typeToString(t.Elt)
	case *ast.InterfaceType:
		return "interface{}"
	default:
		return "unknown"
	}
}

// methodBase strips the context and options variants, so that
// TranslateWithOptions and Translate share the base name "Translate".
func methodBase(name string) string {
	for _, suffix := range []string{"WithOptions", "WithContext"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}

// operationMethod converts an operation name to its Go method name,
// e.g. "getLangs" to "GetLangs".
func operationMethod(operation string) string {
	if operation == "" {
		return ""
	}
	return strings.ToUpper(operation[:1]) + operation[1:]
}

// Analyze matches catalogue endpoints against the scanned methods.
func Analyze(cat *Catalogue, methods []MethodInfo) *Coverage {
	cov := &Coverage{
		Catalogue:   cat,
		Implemented: make(map[string][]MethodInfo),
	}

	byBase := make(map[string][]MethodInfo)
	for _, m := range methods {
		base := methodBase(m.Name)
		byBase[base] = append(byBase[base], m)
	}

	used := make(map[string]bool)
	for _, ep := range cat.Endpoints {
		name := operationMethod(ep.Operation)
		if found, ok := byBase[name]; ok {
			cov.Implemented[ep.Operation] = found
			used[name] = true
			continue
		}
		cov.Missing = append(cov.Missing, ep)
	}

	for _, m := range methods {
		if !used[methodBase(m.Name)] {
			cov.Extra = append(cov.Extra, m)
		}
	}

	return cov
}

// RenderReport writes the coverage as Markdown.
func RenderReport(cov *Coverage, now time.Time) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# API Coverage Report\n\n")
	fmt.Fprintf(&buf, "- API: %s v%s\n", cov.Catalogue.Title, cov.Catalogue.Version)
	fmt.Fprintf(&buf, "- Generated: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&buf, "- Coverage: %.1f%% (%d/%d endpoints)\n\n",
		cov.Percent(), len(cov.Catalogue.Endpoints)-len(cov.Missing), len(cov.Catalogue.Endpoints))

	fmt.Fprintf(&buf, "## Endpoints\n\n")
	fmt.Fprintf(&buf, "| Operation | Category | HTTP | Status | Methods |\n")
	fmt.Fprintf(&buf, "|-----------|----------|------|--------|---------|\n")

	for _, ep := range cov.Catalogue.Endpoints {
		status := "Missing"
		var names []string
		for _, m := range cov.Implemented[ep.Operation] {
			names = append(names, fmt.Sprintf("`%s` (%s:%d)", m.Name, m.File, m.Line))
		}
		if len(names) > 0 {
			status = "Implemented"
		}
		fmt.Fprintf(&buf, "| `%s` | %s | %s | %s | %s |\n",
			ep.Operation, ep.Category, strings.Join(ep.HTTPMethods, ", "), status, strings.Join(names, "<br>"))
	}

	if len(cov.Extra) > 0 {
		fmt.Fprintf(&buf, "\n## Additional Client Methods\n\n")
		for _, m := range cov.Extra {
			fmt.Fprintf(&buf, "- `%s(%s)` returns `(%s)`\n",
				m.Name, strings.Join(m.Parameters, ", "), strings.Join(m.Returns, ", "))
		}
	}

	return buf.Bytes()
}

// ensureProjectRoot moves to the module root when run from tools/ via go generate.
func ensureProjectRoot() error {
	if _, err := os.Stat("go.mod"); err == nil {
		if _, err := os.Stat(catalogueFile); err == nil {
			return nil
		}
	}
	if _, err := os.Stat("../go.mod"); err != nil {
		return fmt.Errorf("go.mod not found in current or parent directory")
	}
	return os.Chdir("..")
}

func main() {
	if err := ensureProjectRoot(); err != nil {
		log.Fatalf("Failed to locate project root: %v", err)
	}

	cat, err := LoadCatalogue(catalogueFile)
	if err != nil {
		log.Fatalf("Failed to load endpoint catalogue: %v", err)
	}

	methods, err := ScanClientMethods(".")
	if err != nil {
		log.Fatalf("Failed to analyze client methods: %v", err)
	}

	cov := Analyze(cat, methods)
	if err := os.WriteFile(reportFile, RenderReport(cov, time.Now()), 0o644); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	log.Printf("Coverage: %.1f%%, report written to %s", cov.Percent(), reportFile)
}
