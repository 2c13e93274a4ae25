// Package main generates the API coverage report for the yatranslate-go library.
//
// The generator compares the Yandex Translate endpoint catalogue kept in
// testdata/endpoints.yaml with the methods implemented on *Client:
// 1. Load the endpoint catalogue
// 2. Parse the Go source code to detect implemented client methods
// 3. Map every endpoint to the method that serves it
// 4. Write the coverage report in Markdown format
//
// Generated files:
// - api_coverage_report.md: coverage analysis at the project root

package main

// Tool dependencies for code generation and analysis
import (
	_ "gopkg.in/yaml.v3" // Required for endpoint catalogue parsing in gen_api_coverage.go
)
