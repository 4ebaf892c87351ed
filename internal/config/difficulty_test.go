package config

import (
	"testing"
)

func TestDifficultyLevelProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.2},
		{5, 0.6},
		{10, 1.0},
		{50, 1.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultyDisabledKeepsInitialLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.3,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 10},
	})

	if got := d.Level(100, 100); got != 0.3 {
		t.Errorf("Level() = %v, expected 0.3 while disabled", got)
	}
}

func TestDifficultyInterval(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	})

	if got := d.Interval(0.2, 0.05, 0, 0); got != 0.2 {
		t.Errorf("Interval at level 0 = %v, expected 0.2", got)
	}
	if got := d.Interval(0.2, 0.05, 10, 0); got != 0.1 {
		t.Errorf("Interval at level 1 = %v, expected 0.1", got)
	}
	if got := d.Interval(0.08, 0.05, 10, 0); got != 0.05 {
		t.Errorf("Interval should not go below the minimum, got %v", got)
	}
}

func TestDifficultySkill(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
	})

	if got := d.Skill(0.5, 0.9, 0, 50); got < 0.7-1e-9 || got > 0.7+1e-9 {
		t.Errorf("Skill at half progression = %v, expected 0.7", got)
	}
}
