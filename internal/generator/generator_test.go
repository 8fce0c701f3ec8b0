package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

func TestWeekdayDates(t *testing.T) {
	// 2023-09-01 is a Friday
	start := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		numDays int
		want    []string
	}{
		{
			name:    "one week drops the weekend",
			numDays: 7,
			want:    []string{"2023-09-01", "2023-09-04", "2023-09-05", "2023-09-06", "2023-09-07"},
		},
		{
			name:    "only a weekend after the first day",
			numDays: 3,
			want:    []string{"2023-09-01"},
		},
		{
			name:    "zero days",
			numDays: 0,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := WeekdayDates(start, tt.numDays)
			got := make([]string, 0, len(dates))
			for _, d := range dates {
				got = append(got, d.Format(domain.DateLayout))
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Len(t, WeekdayDates(start, 30), 21)
}

func TestProbabilities(t *testing.T) {
	assert.Equal(t, 0.8, BaseProbability(time.Monday))
	assert.Equal(t, 0.8, BaseProbability(time.Friday))
	assert.Equal(t, 0.9, BaseProbability(time.Tuesday))
	assert.Equal(t, 0.9, BaseProbability(time.Wednesday))
	assert.Equal(t, 0.9, BaseProbability(time.Thursday))

	assert.True(t, IsSkipper(10))
	assert.True(t, IsSkipper(50))
	assert.False(t, IsSkipper(1))
	assert.False(t, IsSkipper(11))

	assert.InDelta(t, 0.6, PresenceProbability(time.Monday, 20), 1e-12)
	assert.InDelta(t, 0.7, PresenceProbability(time.Wednesday, 30), 1e-12)
	assert.InDelta(t, 0.9, PresenceProbability(time.Wednesday, 7), 1e-12)

	w := StatusWeights(0.6)
	require.Len(t, w, 3)
	assert.InDelta(t, 0.6, w[0], 1e-12)
	assert.InDelta(t, 0.28, w[1], 1e-12)
	assert.InDelta(t, 0.12, w[2], 1e-12)
}

func TestStudentIDs(t *testing.T) {
	assert.Equal(t, []string{"S001", "S002", "S003"}, StudentIDs(3))
	assert.Equal(t, "S050", StudentID(50))
	assert.Equal(t, "S1000", StudentID(1000))
}

func TestWeightedChoice(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	outcomes := []string{"a", "b", "c"}

	t.Run("certain outcome", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			got, err := WeightedChoice(rng, outcomes, []float64{0, 1, 0})
			require.NoError(t, err)
			assert.Equal(t, "b", got)
		}
	})

	t.Run("frequencies follow weights", func(t *testing.T) {
		counts := map[string]int{}
		const n = 20000
		for i := 0; i < n; i++ {
			got, err := WeightedChoice(rng, outcomes, []float64{0.5, 0.35, 0.15})
			require.NoError(t, err)
			counts[got]++
		}
		assert.InDelta(t, 0.5, float64(counts["a"])/n, 0.02)
		assert.InDelta(t, 0.35, float64(counts["b"])/n, 0.02)
		assert.InDelta(t, 0.15, float64(counts["c"])/n, 0.02)
	})

	errCases := []struct {
		name     string
		outcomes []string
		weights  []float64
	}{
		{"empty outcomes", nil, nil},
		{"length mismatch", outcomes, []float64{0.5, 0.5}},
		{"negative weight", outcomes, []float64{1.2, -0.2, 0}},
		{"sum below one", outcomes, []float64{0.3, 0.3, 0.3}},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WeightedChoice(rng, tt.outcomes, tt.weights)
			assert.Error(t, err)
		})
	}
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero students", Config{NumStudents: 0, NumDays: 5, StartDate: DefaultConfig().StartDate}},
		{"negative days", Config{NumStudents: 5, NumDays: -1, StartDate: DefaultConfig().StartDate}},
		{"missing start date", Config{NumStudents: 5, NumDays: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(slog.Default(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_Invariants(t *testing.T) {
	gen, err := NewGenerator(nil, DefaultConfig())
	require.NoError(t, err)

	records, err := gen.Generate(context.Background())
	require.NoError(t, err)

	// 21 school days in the first 30 days of September 2023, 50 students
	assert.Len(t, records, 21*50)
	require.NoError(t, domain.ValidateRecords(records))

	validStatus := map[domain.AttendanceStatus]bool{
		domain.StatusPresent: true, domain.StatusAbsent: true, domain.StatusLate: true,
	}
	for _, r := range records {
		assert.True(t, validStatus[r.Status], "unexpected status %q", r.Status)
		assert.Contains(t, []domain.ClassType{domain.ClassLecture, domain.ClassLab}, r.ClassType)
		assert.NotEqual(t, "Saturday", r.DayOfWeek)
		assert.NotEqual(t, "Sunday", r.DayOfWeek)
		assert.Equal(t, r.Date.Weekday().String(), r.DayOfWeek)

		if r.ClassType == domain.ClassLab {
			assert.Contains(t, []string{"Tuesday", "Thursday"}, r.DayOfWeek)
		}
	}

	// date-major, student-minor order
	assert.Equal(t, "S001", records[0].StudentID)
	assert.Equal(t, "S050", records[49].StudentID)
	assert.Equal(t, records[0].Date, records[49].Date)
	assert.True(t, records[50].Date.After(records[49].Date))
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{
		NumStudents: 5,
		NumDays:     7,
		StartDate:   DefaultConfig().StartDate,
		Seed:        1234,
	}

	run := func() []domain.AttendanceRecord {
		gen, err := NewGenerator(nil, cfg)
		require.NoError(t, err)
		records, err := gen.Generate(context.Background())
		require.NoError(t, err)
		return records
	}

	first := run()
	second := run()
	assert.Len(t, first, 25)
	assert.Equal(t, first, second)
}

func TestGenerate_SkipperCohortAttendsLess(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumStudents = 100
	cfg.NumDays = 120

	gen, err := NewGenerator(nil, cfg)
	require.NoError(t, err)
	records, err := gen.Generate(context.Background())
	require.NoError(t, err)

	var skipPresent, skipTotal, restPresent, restTotal int
	for _, r := range records {
		idx := 0
		_, err := fmt.Sscanf(r.StudentID, "S%d", &idx)
		require.NoError(t, err)
		if IsSkipper(idx) {
			skipTotal++
			if r.IsPresent() {
				skipPresent++
			}
		} else {
			restTotal++
			if r.IsPresent() {
				restPresent++
			}
		}
	}

	skipRate := float64(skipPresent) / float64(skipTotal)
	restRate := float64(restPresent) / float64(restTotal)
	assert.Less(t, skipRate, restRate)
	// expected rates: skippers ~0.66, others ~0.86
	assert.InDelta(t, 0.66, skipRate, 0.05)
	assert.InDelta(t, 0.86, restRate, 0.03)
}
