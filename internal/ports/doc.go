// Package ports defines the interfaces that connect the pipeline to its
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [DatasetSource]: produces the raw mortality table
//   - [ChartStore]: persists rendered chart images
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters (internal/adapters) implement them over the file system, or over
// an in-memory table for tests.
package ports
