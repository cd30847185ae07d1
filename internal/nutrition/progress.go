package nutrition

import (
	"time"
)

// Sample is one consumed item as the aggregation engine sees it: a
// timestamp and its macro values. Repositories convert their records into
// samples before calling in, which keeps this package storage-free.
type Sample struct {
	At   time.Time
	Info Info
}

// DailyProgress is the aggregate of all samples inside one calendar day,
// plus the ratios against the active goal. Never persisted; recomputed on
// demand.
type DailyProgress struct {
	Date        time.Time `json:"date"`
	Totals      Info      `json:"totals"`
	Ratios      Ratios    `json:"ratios"`
	RecordCount int       `json:"recordCount"`
}

// HasRecords reports whether any sample fell inside the day.
func (d DailyProgress) HasRecords() bool {
	return d.RecordCount > 0
}

// DaysPerWeek is the fixed divisor for weekly averages. Weeks are always
// treated as seven days, even when fewer have data.
const DaysPerWeek = 7

// WeeklyProgress sums seven daily aggregates.
type WeeklyProgress struct {
	Days            [DaysPerWeek]DailyProgress `json:"days"`
	Totals          Info                       `json:"totals"`
	AverageCalories float64                    `json:"averageCalories"`
	Consistency     float64                    `json:"consistency"`
	HighestDay      *DailyProgress             `json:"highestDay,omitempty"`
	LowestDay       *DailyProgress             `json:"lowestDay,omitempty"`
}

// MonthlyProgress sums the supplied weeks and carries the goal-met streak.
type MonthlyProgress struct {
	Totals          Info    `json:"totals"`
	AverageCalories float64 `json:"averageCalories"`
	DaysWithRecords int     `json:"daysWithRecords"`
	Streak          int     `json:"streak"`
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Daily aggregates the samples that fall inside the calendar day of `day`,
// using half-open interval semantics [startOfDay, startOfDay+24h). A day
// with no samples yields all-zero totals and ratios.
func Daily(samples []Sample, day time.Time, goal Targets) DailyProgress {
	start := StartOfDay(day)
	end := start.Add(24 * time.Hour)

	progress := DailyProgress{Date: start}
	for _, s := range samples {
		if s.At.Before(start) || !s.At.Before(end) {
			continue
		}
		progress.Totals = progress.Totals.Add(s.Info)
		progress.RecordCount++
	}
	progress.Ratios = progress.Totals.RatiosAgainst(goal)
	return progress
}

// Weekly sums seven daily aggregates. AverageCalories always divides by
// seven, and Consistency is the fraction of days with at least one record.
func Weekly(days [DaysPerWeek]DailyProgress) WeeklyProgress {
	week := WeeklyProgress{Days: days}

	withRecords := 0
	for i := range days {
		week.Totals = week.Totals.Add(days[i].Totals)
		if days[i].HasRecords() {
			withRecords++
			if week.HighestDay == nil || days[i].Totals.Calories > week.HighestDay.Totals.Calories {
				d := days[i]
				week.HighestDay = &d
			}
			if week.LowestDay == nil || days[i].Totals.Calories < week.LowestDay.Totals.Calories {
				d := days[i]
				week.LowestDay = &d
			}
		}
	}

	week.AverageCalories = week.Totals.Calories / DaysPerWeek
	week.Consistency = float64(withRecords) / DaysPerWeek
	return week
}

// Monthly sums across the supplied weeks and computes the goal-met streak
// over their days.
func Monthly(weeks []WeeklyProgress) MonthlyProgress {
	month := MonthlyProgress{}

	var days []DailyProgress
	for _, w := range weeks {
		month.Totals = month.Totals.Add(w.Totals)
		for _, d := range w.Days {
			days = append(days, d)
			if d.HasRecords() {
				month.DaysWithRecords++
			}
		}
	}

	if len(days) > 0 {
		month.AverageCalories = month.Totals.Calories / float64(len(days))
	}
	month.Streak = Streak(days)
	return month
}

// Goal-met band for the calorie ratio. Protein, carbs, and fat only have a
// lower bound: under-consuming them does not break a streak the way missing
// the calorie window does.
const (
	goalMetLowerBound      = 0.9
	goalMetCalorieUpperCap = 1.1
)

// GoalMet reports whether a day's ratios satisfy the streak rule.
func GoalMet(r Ratios) bool {
	if r.Calories < goalMetLowerBound || r.Calories > goalMetCalorieUpperCap {
		return false
	}
	return r.Protein >= goalMetLowerBound &&
		r.Carbs >= goalMetLowerBound &&
		r.Fat >= goalMetLowerBound
}

// Streak counts consecutive goal-met days, scanning backward from the most
// recent day with data. Days are ordered oldest-first; unordered input is
// sorted by the engine's callers before batching into weeks.
func Streak(days []DailyProgress) int {
	// Find the most recent day with any record.
	last := -1
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].HasRecords() {
			last = i
			break
		}
	}
	if last == -1 {
		return 0
	}

	streak := 0
	for i := last; i >= 0; i-- {
		if !days[i].HasRecords() || !GoalMet(days[i].Ratios) {
			break
		}
		streak++
	}
	return streak
}

// WeekContaining aggregates the seven days ending at `day` (inclusive) from
// the given samples. Convenience wrapper used by the facade.
func WeekContaining(samples []Sample, day time.Time, goal Targets) WeeklyProgress {
	var days [DaysPerWeek]DailyProgress
	start := StartOfDay(day).AddDate(0, 0, -(DaysPerWeek - 1))
	for i := 0; i < DaysPerWeek; i++ {
		days[i] = Daily(samples, start.AddDate(0, 0, i), goal)
	}
	return Weekly(days)
}
