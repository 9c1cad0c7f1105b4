// Package shared provides common utilities and test helpers used across the LIKE report tools.
// It serves as a central location for shared functionality that doesn't belong to any
// specific domain or architectural layer.
//
// # Structure
//
// The package is organized into the following components:
//
// - testutil: log capture and CSV fixtures for the platform exports
//
// # Usage Guidelines
//
// This package should only contain:
//
// 1. Test utilities used by multiple packages
// 2. Generic helper functions with no domain-specific logic
// 3. Common constants or types used across packages
//
// It should NOT contain:
//
// 1. Business logic or domain-specific code
// 2. Dependencies on internal packages other than contracts
// 3. Circular dependencies with other internal packages
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//	- A buffered slog handler for asserting on log output
//	- CSV fixture builders for the four platform exports
//
// Example usage:
//
//	func TestAnalyze(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    paths := testutil.WriteInputSet(t, t.TempDir(), testutil.DefaultScenario())
//	    ...
//	}
package shared
