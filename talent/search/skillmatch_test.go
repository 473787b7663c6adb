package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSkills_EmptyRequirements(t *testing.T) {
	score := ScoreSkills([]string{"react"}, nil)

	assert.Equal(t, 100, score.Score)
	assert.InDelta(t, 100, score.Raw, 1e-9)
	assert.Empty(t, score.Missing)
}

func TestScoreSkills_NoOverlap(t *testing.T) {
	score := ScoreSkills([]string{"cobol", "fortran"}, []string{"react"})

	assert.Equal(t, 0, score.Score)
	assert.Empty(t, score.Direct)
	assert.Empty(t, score.Transferable)
	assert.Equal(t, []string{"react"}, score.Missing)
}

func TestScoreSkills_SingleDirectMatch(t *testing.T) {
	score := ScoreSkills([]string{"React"}, []string{"react"})

	assert.Equal(t, 65, score.Score)
	assert.Equal(t, []string{"react"}, score.Direct)
	assert.Empty(t, score.Missing)
}

func TestScoreSkills_SingleTransferableMatch(t *testing.T) {
	score := ScoreSkills([]string{"vue.js"}, []string{"react"})

	assert.Equal(t, 55, score.Score)
	require.Len(t, score.Transferable, 1)
	assert.Equal(t, TransferableSkill{Required: "react", Has: "vue.js"}, score.Transferable[0])
	assert.Empty(t, score.Missing)
}

func TestScoreSkills_BandedScores(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		required  []string
		wantScore int
		wantRaw   float64
	}{
		{
			name:      "full coverage caps at 99",
			candidate: []string{"react", "node.js", "typescript"},
			required:  []string{"react", "node.js", "typescript"},
			wantScore: 99,
			wantRaw:   100,
		},
		{
			name:      "two of three direct",
			candidate: []string{"react", "python"},
			required:  []string{"react", "python", "html"},
			wantScore: 98,
			wantRaw:   90,
		},
		{
			name:      "direct plus transferable",
			candidate: []string{"react", "express"},
			required:  []string{"react", "node.js", "graphql"},
			wantScore: 87,
			wantRaw:   85,
		},
		{
			name:      "transferable only",
			candidate: []string{"vue.js", "express"},
			required:  []string{"react", "node.js", "graphql", "html"},
			wantScore: 73,
			wantRaw:   75,
		},
		{
			name:      "thin coverage lands in the lowest band",
			candidate: []string{"vue.js", "express"},
			required:  []string{"react", "node.js", "graphql", "html", "firebase", "redux", "tailwind"},
			wantScore: 62,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreSkills(tt.candidate, tt.required)
			assert.Equal(t, tt.wantScore, got.Score)
			if tt.wantRaw != 0 {
				assert.InDelta(t, tt.wantRaw, got.Raw, 1e-9)
			}
		})
	}
}

func TestBandScore_Boundaries(t *testing.T) {
	tests := []struct {
		raw  float64
		want int
	}{
		{100, 99},
		{95, 98},
		{90, 98},
		{89.9, 87},
		{80, 87},
		{79.9, 73},
		{70, 73},
		{69.9, 62},
		{60, 62},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bandScore(tt.raw), "raw=%.1f", tt.raw)
	}
}

func TestScoreSkills_RawMonotonicInCoverage(t *testing.T) {
	required := []string{"react", "node.js", "typescript", "aws"}

	var candidate []string
	prev := 0.0
	for _, skill := range []string{"vue.js", "express", "typescript", "aws", "react"} {
		candidate = append(candidate, skill)
		raw := ScoreSkills(candidate, required).Raw
		assert.GreaterOrEqual(t, raw, prev, "after adding %q", skill)
		prev = raw
	}
}

func TestScoreSkills_TransferableCreditsFirstCandidateSkill(t *testing.T) {
	score := ScoreSkills([]string{"angular", "vue.js"}, []string{"react"})

	require.Len(t, score.Transferable, 1)
	assert.Equal(t, "angular", score.Transferable[0].Has)
}

func TestScoreSkills_MissingListsUncoveredOnly(t *testing.T) {
	score := ScoreSkills([]string{"react", "express"}, []string{"react", "node.js", "graphql", "html"})

	assert.Equal(t, []string{"react"}, score.Direct)
	require.Len(t, score.Transferable, 1)
	assert.Equal(t, "node.js", score.Transferable[0].Required)
	assert.Equal(t, []string{"graphql", "html"}, score.Missing)
}
