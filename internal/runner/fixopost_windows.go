//go:build windows

package runner

// fixOutputProcessing is a no-op on Windows; console output translation is
// not affected by raw input mode there.
func fixOutputProcessing(int) {}
