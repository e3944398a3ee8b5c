package domain

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Clean drops every row whose Data_Value is missing and renames the generic
// stratification columns per Renames. The input is left untouched and
// Clean(Clean(d)) equals Clean(d).
//
// A Dataset without a Data_Value column violates the loader contract; Clean
// then only renames. A rename whose target column already exists is not
// applied, so both columns are kept as they are; SkippedRenames lists those.
func Clean(d Dataset) Dataset {
	frame := d.frame
	if frame.Ncol() == 0 {
		return d
	}

	if d.Has(ColumnValue) && d.Len() > 0 {
		frame = frame.Filter(dataframe.F{
			Colname:    ColumnValue,
			Comparator: series.CompFunc,
			Comparando: hasMeasurement,
		})
	} else {
		frame = frame.Copy()
	}

	names := frame.Names()
	for _, r := range Renames {
		if !contains(names, r.From) || contains(names, r.To) {
			continue
		}
		frame = frame.Rename(r.To, r.From)
		names = frame.Names()
	}

	out := Dataset{frame: frame}
	out.empty = frame.Nrow() == 0
	return out
}

// SkippedRenames returns the entries of Renames that Clean leaves alone
// because d already carries both the source and the target column.
func SkippedRenames(d Dataset) []Rename {
	names := d.Columns()
	var out []Rename
	for _, r := range Renames {
		if contains(names, r.From) && contains(names, r.To) {
			out = append(out, r)
		}
	}
	return out
}

func hasMeasurement(el series.Element) bool {
	return !el.IsNA() && !math.IsNaN(el.Float())
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
