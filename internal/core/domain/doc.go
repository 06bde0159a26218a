// Package domain defines the core business entities for roster.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Role: A named role and its member usernames
//   - Comparison: The string comparison policy for names and usernames
//   - StoreSettings: Where and how roles are persisted
//   - StoreChange: A change observed on persisted role storage
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
