// Package model holds the dashboard's domain records.
//
// Two families live here:
//   - raw records the store hands back (amounts in minor units, int64)
//   - display rows the service layer builds (amounts already formatted)
//
// Nothing in this package formats or queries; it only describes shapes.
package model
