package analysis

import (
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

// HeatmapData is a student by date presence matrix.
// Values[i][j] is the mean presence (1 Present, 0 otherwise) of Students[i] on Dates[j].
type HeatmapData struct {
	Students []string
	Dates    []time.Time
	Values   [][]float64
}

// Empty reports whether there is nothing to draw
func (h HeatmapData) Empty() bool {
	return len(h.Students) == 0 || len(h.Dates) == 0
}

// SampleStudents returns the first n distinct student IDs in order of appearance.
// Missing IDs are skipped.
func SampleStudents(t *Table, n int) []string {
	ids, missing := t.Column(domain.ColumnStudentID)
	seen := make(map[string]bool)
	sample := make([]string, 0, n)
	for i, id := range ids {
		if len(sample) == n {
			break
		}
		if missing[i] || seen[id] {
			continue
		}
		seen[id] = true
		sample = append(sample, id)
	}
	return sample
}

// Heatmap pivots the first n students against dates.
// Rows are sorted by student ID and columns by date; pairs without records are 0.
// Rows with a missing or unparseable date are left out, as are students with
// no dated rows.
func Heatmap(t *Table, n int) (HeatmapData, error) {
	sample := SampleStudents(t, n)
	if len(sample) == 0 || t.Len() == 0 {
		return HeatmapData{}, nil
	}

	// Keep the row positions so parsed dates can be looked up
	indexed := t.df.Mutate(series.New(rowPositions(t.Len()), series.Int, "_row"))
	subset := indexed.Filter(dataframe.F{
		Colname:    domain.ColumnStudentID,
		Comparator: series.In,
		Comparando: sample,
	})
	if subset.Err != nil {
		return HeatmapData{}, subset.Err
	}

	ids, _ := columnValues(subset.Col(domain.ColumnStudentID))
	statuses, _ := columnValues(subset.Col(domain.ColumnStatus))
	positions, err := subset.Col("_row").Int()
	if err != nil {
		return HeatmapData{}, err
	}

	parsed := t.dates
	if parsed == nil {
		parsed = parseDates(t.Column(domain.ColumnDate))
	}

	type cell struct {
		student string
		date    time.Time
	}
	sums := make(map[cell]float64)
	counts := make(map[cell]int)
	students := make(map[string]bool)
	dateSet := make(map[time.Time]bool)

	for i, id := range ids {
		date := parsed[positions[i]]
		if date.IsZero() {
			continue
		}
		c := cell{id, date}
		if statuses[i] == string(domain.StatusPresent) {
			sums[c]++
		}
		counts[c]++
		students[id] = true
		dateSet[date] = true
	}

	h := HeatmapData{
		Students: make([]string, 0, len(students)),
		Dates:    make([]time.Time, 0, len(dateSet)),
	}
	for s := range students {
		h.Students = append(h.Students, s)
	}
	sort.Strings(h.Students)
	for d := range dateSet {
		h.Dates = append(h.Dates, d)
	}
	sort.Slice(h.Dates, func(i, j int) bool { return h.Dates[i].Before(h.Dates[j]) })

	h.Values = make([][]float64, len(h.Students))
	for i, s := range h.Students {
		h.Values[i] = make([]float64, len(h.Dates))
		for j, d := range h.Dates {
			c := cell{s, d}
			if counts[c] > 0 {
				h.Values[i][j] = sums[c] / float64(counts[c])
			}
		}
	}
	return h, nil
}

func rowPositions(n int) []int {
	pos := make([]int, n)
	for i := range pos {
		pos[i] = i
	}
	return pos
}
