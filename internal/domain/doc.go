// Package domain contains the core entities and rules of mortplot.
//
// This package is the innermost layer. It knows nothing about files, charts
// or logging; it only describes the mortality table and how it is cleaned.
//
// # Entities
//
//   - [Dataset]: an immutable table of mortality records
//   - [Rename]: one entry of the fixed source-to-semantic column table
//   - [Error]: a pipeline failure tagged with a [Kind]
//
// # Rules
//
//   - [Clean] drops rows without a measurement and applies [Renames]
//   - Every Dataset method returns a new value; nothing is modified in place
package domain
