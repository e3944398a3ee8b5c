package domain

import "github.com/go-gota/gota/series"

// Source column names as they appear in the CDC export.
const (
	ColumnYear            = "Year"
	ColumnValue           = "Data_Value"
	ColumnStratification1 = "Stratification1"
	ColumnStratification2 = "Stratification2"
	ColumnStratification3 = "Stratification3"
)

// Semantic column names produced by Clean.
const (
	ColumnAgeGroup = "Age_Group"
	ColumnRace     = "Race"
	ColumnSex      = "Sex"
)

// Rename maps a generic stratification column onto its semantic name.
type Rename struct {
	From string
	To   string
}

// Renames is the fixed relabeling applied by Clean. Schema drift is a change
// to this table only.
var Renames = []Rename{
	{From: ColumnStratification1, To: ColumnAgeGroup},
	{From: ColumnStratification2, To: ColumnRace},
	{From: ColumnStratification3, To: ColumnSex},
}

// DefaultColumns is the column allow-list read from the source file.
func DefaultColumns() []string {
	return []string{
		ColumnYear,
		ColumnValue,
		ColumnStratification1,
		ColumnStratification2,
		ColumnStratification3,
	}
}

// columnTypes holds the coercions applied when a table is built.
// Columns not listed here stay strings. Year stays a string so that exports
// writing it as "2000.0" still resolve; Dataset.Ints parses it.
var columnTypes = map[string]series.Type{
	ColumnValue: series.Float,
}

// missingMarkers are the cell values treated as NA.
var missingMarkers = []string{"", "NA", "NaN", "nan", "<nil>"}
