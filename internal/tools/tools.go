//go:build tools
// +build tools

// Package tools pins binaries invoked with go run during development.
package tools

import (
	_ "github.com/nikolaydubina/go-cover-treemap"
)
