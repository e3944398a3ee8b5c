package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/mortplot/internal/domain"
)

var cleanHeader = []string{
	domain.ColumnYear, domain.ColumnValue, domain.ColumnAgeGroup, domain.ColumnRace, domain.ColumnSex,
}

func dataset(t *testing.T, header []string, rows [][]string) domain.Dataset {
	t.Helper()
	ds, err := domain.NewDataset(header, rows)
	require.NoError(t, err)
	return ds
}

func TestMeanByYear_OnePointPerDistinctYear(t *testing.T) {
	ds := dataset(t, []string{domain.ColumnYear, domain.ColumnValue}, [][]string{
		{"2005", "7"},
		{"2001", "10"},
		{"2000", "3"},
		{"2001", "20"},
	})

	points, _, err := MeanByYear(ds)
	require.NoError(t, err)

	assert.Equal(t, []YearMean{
		{Year: 2000, Mean: 3, N: 1},
		{Year: 2001, Mean: 15, N: 2},
		{Year: 2005, Mean: 7, N: 1},
	}, points)
}

func TestMeanByYear_SkipsMissingYears(t *testing.T) {
	ds := dataset(t, []string{domain.ColumnYear, domain.ColumnValue}, [][]string{
		{"", "7"},
		{"2001", "10"},
	})

	points, dropped, err := MeanByYear(ds)
	require.NoError(t, err)
	assert.Len(t, points, 1)
	assert.Equal(t, 1, dropped)
}

func TestMeanByYear_WholeFloatYears(t *testing.T) {
	ds := dataset(t, []string{domain.ColumnYear, domain.ColumnValue}, [][]string{
		{"2000.0", "10"},
		{"2000.0", "12"},
		{"2001", "11"},
	})

	points, dropped, err := MeanByYear(ds)
	require.NoError(t, err)

	assert.Zero(t, dropped)
	assert.Equal(t, []YearMean{
		{Year: 2000, Mean: 11, N: 2},
		{Year: 2001, Mean: 11, N: 1},
	}, points)
}

func TestMeanByYear_MissingColumn(t *testing.T) {
	ds := dataset(t, []string{domain.ColumnValue}, [][]string{{"1"}})

	_, _, err := MeanByYear(ds)
	require.Error(t, err)
	assert.Equal(t, domain.KindChartSkip, domain.KindOf(err))
}

func TestCountBy_SortedByLabel(t *testing.T) {
	ds := dataset(t, cleanHeader, [][]string{
		{"2000", "1", "Ages 65+", "White", "Male"},
		{"2000", "2", "Ages 35-64", "White", "Male"},
		{"2001", "3", "Ages 65+", "Black", "Female"},
		{"2001", "4", "", "Black", "Female"},
	})

	counts, dropped, err := CountBy(ds, domain.ColumnAgeGroup)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)

	assert.Equal(t, []CategoryCount{
		{Label: "Ages 35-64", Count: 1},
		{Label: "Ages 65+", Count: 2},
	}, counts)
}

func TestCountBy_MissingColumn(t *testing.T) {
	ds := dataset(t, []string{domain.ColumnYear}, [][]string{{"2000"}})

	_, _, err := CountBy(ds, domain.ColumnAgeGroup)
	assert.ErrorIs(t, err, domain.ErrChartSkip)
}

func TestSpreadBy_ExcludesUnderThresholdCategories(t *testing.T) {
	var rows [][]string
	for i := 0; i < 10; i++ {
		rows = append(rows, []string{"A", "1" + string(rune('0'+i))})
	}
	for i := 0; i < 3; i++ {
		rows = append(rows, []string{"B", "5"})
	}
	ds := dataset(t, []string{domain.ColumnRace, domain.ColumnValue}, rows)

	spread, _, err := SpreadBy(ds, domain.ColumnRace, 5)
	require.NoError(t, err)

	require.Len(t, spread, 1)
	assert.Equal(t, "A", spread[0].Label)
	assert.Equal(t, 10, spread[0].Box.N)
	assert.InDelta(t, 14.5, spread[0].Box.Median, 1e-9)
}

func TestSpreadBy_FirstSeenOrder(t *testing.T) {
	ds := dataset(t, []string{domain.ColumnRace, domain.ColumnValue}, [][]string{
		{"White", "1"}, {"Black", "2"}, {"White", "3"}, {"Asian", "4"}, {"Black", "5"},
	})

	spread, _, err := SpreadBy(ds, domain.ColumnRace, 1)
	require.NoError(t, err)

	labels := make([]string, 0, len(spread))
	for _, s := range spread {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"White", "Black", "Asian"}, labels)
}

func TestSpreadBy_NothingQualifies(t *testing.T) {
	ds := dataset(t, []string{domain.ColumnRace, domain.ColumnValue}, [][]string{
		{"A", "1"}, {"B", "2"},
	})

	_, _, err := SpreadBy(ds, domain.ColumnRace, 5)
	require.Error(t, err)
	assert.Equal(t, domain.KindChartSkip, domain.KindOf(err))
}

func TestSpreadBy_MissingColumn(t *testing.T) {
	ds := dataset(t, []string{domain.ColumnYear, domain.ColumnValue}, [][]string{{"2000", "1"}})

	_, _, err := SpreadBy(ds, domain.ColumnRace, 5)
	assert.ErrorIs(t, err, domain.ErrChartSkip)
}

func TestSpreadBy_CountsDroppedRows(t *testing.T) {
	ds := dataset(t, []string{domain.ColumnRace, domain.ColumnValue}, [][]string{
		{"A", "1"}, {"", "2"}, {"A", ""}, {"A", "3"},
	})

	spread, dropped, err := SpreadBy(ds, domain.ColumnRace, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	require.Len(t, spread, 1)
	assert.Equal(t, 2, spread[0].Box.N)
}
