package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/problemgen"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"a", 0, true},
		{" D ", 3, true},
		{"2", 1, true},
		{"4", 3, true},
		{"5", 0, false},
		{"e", 0, false},
		{"0", 0, false},
		{"", 0, false},
		{"ab", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.in, 4)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestSubjectsFromArgs(t *testing.T) {
	all, err := subjectsFromArgs(nil, true)
	require.NoError(t, err)
	assert.Equal(t, problemgen.Subjects, all)

	got, err := subjectsFromArgs([]string{"Science", "math"}, false)
	require.NoError(t, err)
	assert.Equal(t, []problemgen.Subject{problemgen.SubjectScience, problemgen.SubjectMath}, got)

	_, err = subjectsFromArgs(nil, false)
	assert.ErrorContains(t, err, "math, science, reading, social")

	_, err = subjectsFromArgs([]string{"art"}, false)
	assert.Error(t, err)
}

func TestRenderStats(t *testing.T) {
	p := bank.DefaultPolicy()
	out := renderStats("maya", p, []bank.SubjectStats{
		{
			Subject:         problemgen.SubjectMath,
			Size:            12,
			Mastered:        3,
			ByDifficulty:    map[int]int{1: 4, 2: 8},
			BySource:        map[bank.Source]int{bank.SourceCorpus: 10, bank.SourceGenerated: 2},
			LastReplenished: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Replenishing:    true,
		},
		{Subject: problemgen.SubjectReading},
	})

	assert.Contains(t, out, "profile maya")
	assert.Contains(t, out, "12/30")
	assert.Contains(t, out, "4 8 0 0 0")
	assert.Contains(t, out, "ai 2 / corpus 10")
	assert.Contains(t, out, "(running)")
	assert.Contains(t, out, "never")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "claude", truncate("claude", 10))
	assert.Equal(t, "clau", truncate("claude", 4))
}
