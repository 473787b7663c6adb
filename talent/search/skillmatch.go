package search

import "strings"

// TransferableSkill records a partial-credit substitution: the
// candidate has Has, which stands in for the required skill.
type TransferableSkill struct {
	Required string `json:"required"`
	Has      string `json:"has"`
}

// SkillScore is the result of matching a candidate skill set against a
// required skill set. Raw is the pre-banding value and the ordering
// key; Score is the displayed value.
type SkillScore struct {
	Score        int                 `json:"score"`
	Raw          float64             `json:"-"`
	Direct       []string            `json:"direct_matches"`
	Transferable []TransferableSkill `json:"transferable_matches"`
	Missing      []string            `json:"missing_skills"`
}

// ScoreSkills scores candidateSkills against requiredSkills.
// Comparison is case-insensitive; candidate iteration order is input
// order, which decides which transferable skill gets credited.
func ScoreSkills(candidateSkills, requiredSkills []string) SkillScore {
	candLower := lowerAll(candidateSkills)
	reqLower := lowerAll(requiredSkills)

	candSet := make(map[string]struct{}, len(candLower))
	for _, s := range candLower {
		candSet[s] = struct{}{}
	}

	var direct []string
	directSet := make(map[string]struct{})
	for _, req := range reqLower {
		if _, ok := candSet[req]; ok {
			direct = append(direct, req)
			directSet[req] = struct{}{}
		}
	}

	// One transferable credit per required skill; the first candidate
	// skill in candidate order wins.
	var transferable []TransferableSkill
	transferSet := make(map[string]struct{})
	for _, req := range reqLower {
		if _, ok := directSet[req]; ok {
			continue
		}
		accepted := transferableSkills[req]
		if len(accepted) == 0 {
			continue
		}
		for _, cand := range candLower {
			if contains(accepted, cand) {
				transferable = append(transferable, TransferableSkill{Required: req, Has: cand})
				transferSet[req] = struct{}{}
				break
			}
		}
	}

	var missing []string
	for _, req := range reqLower {
		if _, ok := directSet[req]; ok {
			continue
		}
		if _, ok := transferSet[req]; ok {
			continue
		}
		missing = append(missing, req)
	}

	score, raw := scoreFromCounts(len(direct), len(transferable), len(reqLower))

	return SkillScore{
		Score:        score,
		Raw:          raw,
		Direct:       direct,
		Transferable: transferable,
		Missing:      missing,
	}
}

// scoreFromCounts applies the scoring policy. Single-match and edge
// scores are fixed values; multi-match scores are banded so the final
// digit never lands on a round number.
func scoreFromCounts(direct, transferable, required int) (int, float64) {
	total := direct + transferable

	switch {
	case required == 0:
		return 100, 100
	case total == 0:
		return 0, 0
	case total == 1:
		if direct == 1 {
			return 65, 65
		}
		return 55, 55
	}

	raw := 60 + (float64(total)/float64(required))*30 + float64(direct)*5
	if raw > 100 {
		raw = 100
	}

	return bandScore(raw), raw
}

// bandScore maps a raw multi-match score onto its display band:
// 100→99, [90,100)→98, [80,90)→87, [70,80)→73, [60,70)→62.
// Monotone in raw.
func bandScore(raw float64) int {
	tens := int(raw/10) * 10

	var banded int
	switch {
	case raw >= 90:
		banded = tens + 8
	case raw >= 80:
		banded = tens + 7
	case raw >= 70:
		banded = tens + 3
	default:
		banded = tens + 2
	}

	if banded > 99 {
		banded = 99
	}
	return banded
}

func lowerAll(xs []string) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = strings.ToLower(x)
	}
	return out
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
