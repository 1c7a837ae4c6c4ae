//go:build darwin

package main

// Pull in the macOS backend so its init() registers the provider.
import _ "github.com/mlyden/inputsource-cli/internal/platform/darwin"
