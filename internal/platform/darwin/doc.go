//go:build darwin

// Package darwin provides macOS platform support using the Carbon Text Input
// Source Services API. Builds with cgo link the Carbon framework directly;
// builds without cgo resolve the same entry points at runtime via dlopen.
package darwin
