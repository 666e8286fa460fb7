//go:build tools
// +build tools

// Package tools defines helper build time tooling needed by the codebase.
package tools

import (
	// for linting.
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)
