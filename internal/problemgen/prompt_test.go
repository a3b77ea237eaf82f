package problemgen

import (
	"strings"
	"testing"
)

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(GenerateInput{
		Subject:    SubjectScience,
		Topic:      "food chains",
		GradeLevel: 4,
		Difficulty: 3,
	}, DefaultConfig())

	for _, want := range []string{
		"Subject: science",
		"Topic: food chains",
		"Grade: 4",
		"Difficulty: 3 of 5",
		"Already asked:\nNone",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildUserMessage_Kindergarten(t *testing.T) {
	msg := buildUserMessage(GenerateInput{Subject: SubjectMath, Difficulty: 1}, DefaultConfig())
	if !strings.Contains(msg, "Grade: kindergarten") {
		t.Errorf("expected kindergarten label:\n%s", msg)
	}
	if strings.Contains(msg, "Topic:") {
		t.Error("empty topic should be omitted")
	}
}

func TestBuildDedup(t *testing.T) {
	if got := buildDedup(nil, 5); got != "None" {
		t.Errorf("empty = %q, want None", got)
	}

	prior := []string{"q1", "q2", "q3", "q4"}
	got := buildDedup(prior, 2)
	if got != "1. q3\n2. q4" {
		t.Errorf("buildDedup kept wrong window: %q", got)
	}

	if got := buildDedup(prior, 0); !strings.HasPrefix(got, "1. q1") {
		t.Errorf("max 0 should keep everything: %q", got)
	}
}
