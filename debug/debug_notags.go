//go:build !debug

package debug

// Debug turns on expensive internal assertions and full stack traces.
const Debug = false
