package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/raziya7781/Attendance-Dataset-Analysis/pkg/contracts/domain"
)

const (
	// Base presence probability by weekday
	baseProbability       = 0.9
	edgeOfWeekProbability = 0.8 // Monday and Friday

	// skipperPenalty is subtracted from the presence probability of the skipper cohort
	skipperPenalty = 0.2
	// skipperInterval selects every n-th student (by 1-based index) into the skipper cohort
	skipperInterval = 10

	// Share of the non-present mass assigned to each outcome
	absentShare = 0.7
	lateShare   = 0.3

	// labProbability is the per-record chance of a Lab session on Tuesday/Thursday
	labProbability = 0.3
)

// Config holds generation parameters
type Config struct {
	NumStudents int       `validate:"gt=0"`
	NumDays     int       `validate:"gt=0"`
	StartDate   time.Time `validate:"required"`
	Seed        int64
}

// DefaultConfig returns the parameters of the reference dataset
func DefaultConfig() Config {
	return Config{
		NumStudents: 50,
		NumDays:     30,
		StartDate:   time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
		Seed:        42,
	}
}

// Generator produces synthetic attendance records
type Generator struct {
	logger *slog.Logger
	cfg    Config
	rng    *rand.Rand
}

// NewGenerator validates cfg and creates a generator seeded from cfg.Seed
func NewGenerator(logger *slog.Logger, cfg Config) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}

	return &Generator{
		logger: logger,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Generate builds the dataset: one record per (date, student) pair, date-major.
// The same seed always yields the same records.
func (g *Generator) Generate(ctx context.Context) ([]domain.AttendanceRecord, error) {
	dates := WeekdayDates(g.cfg.StartDate, g.cfg.NumDays)
	students := StudentIDs(g.cfg.NumStudents)

	g.logger.InfoContext(ctx, "generating attendance records",
		slog.Int("students", len(students)),
		slog.Int("calendar_days", g.cfg.NumDays),
		slog.Int("school_days", len(dates)),
		slog.String("start_date", g.cfg.StartDate.Format(domain.DateLayout)),
		slog.Int64("seed", g.cfg.Seed))

	records := make([]domain.AttendanceRecord, 0, len(dates)*len(students))
	for _, date := range dates {
		day := date.Weekday()
		for i, studentID := range students {
			p := PresenceProbability(day, i+1)

			status, err := WeightedChoice(g.rng, domain.Statuses, StatusWeights(p))
			if err != nil {
				return nil, fmt.Errorf("draw status for %s on %s: %w", studentID, date.Format(domain.DateLayout), err)
			}

			records = append(records, domain.NewAttendanceRecord(studentID, date, g.classType(day), status))
		}
	}

	g.logger.InfoContext(ctx, "generated attendance records", slog.Int("record_count", len(records)))
	return records, nil
}

// classType returns Lecture, or Lab with labProbability on Tuesday/Thursday
func (g *Generator) classType(day time.Weekday) domain.ClassType {
	if day == time.Tuesday || day == time.Thursday {
		if g.rng.Float64() < labProbability {
			return domain.ClassLab
		}
	}
	return domain.ClassLecture
}

// WeekdayDates returns the school days among numDays consecutive calendar days from start
func WeekdayDates(start time.Time, numDays int) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	dates := make([]time.Time, 0, numDays)
	for d := 0; d < numDays; d++ {
		date := start.AddDate(0, 0, d)
		if domain.IsSchoolDay(date.Weekday()) {
			dates = append(dates, date)
		}
	}
	return dates
}

// StudentIDs returns S001..Snnn for n students
func StudentIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = StudentID(i + 1)
	}
	return ids
}

// StudentID formats a 1-based student index
func StudentID(index int) string {
	return fmt.Sprintf("S%03d", index)
}

// BaseProbability is the presence probability for a weekday before student adjustments
func BaseProbability(day time.Weekday) float64 {
	if day == time.Monday || day == time.Friday {
		return edgeOfWeekProbability
	}
	return baseProbability
}

// IsSkipper reports whether the 1-based student index belongs to the skipper cohort
func IsSkipper(index int) bool {
	return index%skipperInterval == 0
}

// PresenceProbability is p for a student on a weekday
func PresenceProbability(day time.Weekday, index int) float64 {
	p := BaseProbability(day)
	if IsSkipper(index) {
		p -= skipperPenalty
	}
	return p
}

// StatusWeights returns the Present/Absent/Late weights for presence probability p
func StatusWeights(p float64) []float64 {
	return []float64{p, (1 - p) * absentShare, (1 - p) * lateShare}
}
