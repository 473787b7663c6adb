package search

import (
	"fmt"
	"math"
	"time"

	"github.com/talentwire/scout/talent/candidate"
)

const (
	shortStintMonths = 12
	longStintMonths  = 36
	recentWindowDays = 1095
)

// Stability buckets a tenure score into a coarse risk label
type Stability string

const (
	StabilityStable   Stability = "stable"
	StabilityModerate Stability = "moderate"
	StabilityHighRisk Stability = "high_risk"
)

// TenureAnalysis summarizes job-hopping risk from history intervals
type TenureAnalysis struct {
	Score         int       `json:"tenure_score"`
	Stability     Stability `json:"stability_level"`
	AverageMonths float64   `json:"avg_tenure_months"`
	RedFlags      []string  `json:"red_flags"`
	ShortStints   int       `json:"short_stint_count"`
	LongStints    int       `json:"long_stint_count"`
}

// AnalyzeTenure analyzes job history against the current date
func AnalyzeTenure(history []candidate.JobHistoryEntry) TenureAnalysis {
	return AnalyzeTenureAt(history, time.Now())
}

// AnalyzeTenureAt analyzes job history against a fixed evaluation date.
// Entries whose dates cannot be parsed are skipped; a history with no
// usable entries comes back neutral (70, moderate, no flags).
func AnalyzeTenureAt(history []candidate.JobHistoryEntry, evalDate time.Time) TenureAnalysis {
	neutral := TenureAnalysis{Score: 70, Stability: StabilityModerate}
	if len(history) == 0 {
		return neutral
	}

	var (
		durations   []int
		short       int
		long        int
		recentShort int
	)

	for _, job := range history {
		months, ok := job.DurationMonths(evalDate)
		if !ok {
			continue
		}
		durations = append(durations, months)

		_, end, _ := job.Span(evalDate)
		isRecent := evalDate.Sub(end) < recentWindowDays*24*time.Hour

		if months < shortStintMonths {
			short++
			if isRecent {
				recentShort++
			}
		} else if months > longStintMonths {
			long++
		}
	}

	if len(durations) == 0 {
		return neutral
	}

	totalMonths := 0
	for _, d := range durations {
		totalMonths += d
	}
	avg := float64(totalMonths) / float64(len(durations))

	score := 70 - short*15 - recentShort*10 + long*10
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var flags []string
	if short >= 3 {
		flags = append(flags, fmt.Sprintf("%d jobs lasted less than 1 year", short))
	}
	if recentShort >= 2 {
		flags = append(flags, "Multiple short stints in the last 3 years")
	}
	if avg < 12 {
		flags = append(flags, fmt.Sprintf("Average tenure is only %.0f months", avg))
	}

	// Longest run of consecutive short stints, input order
	consecutive, maxConsecutive := 0, 0
	for _, d := range durations {
		if d < shortStintMonths {
			consecutive++
			if consecutive > maxConsecutive {
				maxConsecutive = consecutive
			}
		} else {
			consecutive = 0
		}
	}
	if maxConsecutive >= 3 {
		flags = append(flags, fmt.Sprintf("%d consecutive jobs under 1 year", maxConsecutive))
	}

	stability := StabilityHighRisk
	switch {
	case score >= 75:
		stability = StabilityStable
	case score >= 50:
		stability = StabilityModerate
	}

	return TenureAnalysis{
		Score:         score,
		Stability:     stability,
		AverageMonths: math.Round(avg*10) / 10,
		RedFlags:      flags,
		ShortStints:   short,
		LongStints:    long,
	}
}
