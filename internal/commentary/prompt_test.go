package commentary

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name     string
		style    string
		keywords []string
		contains []string
		excludes []string
	}{
		{
			name:     "excitable style",
			style:    "excitable",
			contains: []string{"excitable style", `"WHAT A PLAY!" or "UNBELIEVABLE!"`},
		},
		{
			name:     "analytical style",
			style:    "analytical",
			contains: []string{"technique, strategy, and player positioning"},
		},
		{
			name:     "old school style",
			style:    "old school",
			contains: []string{"1980s and 90s"},
		},
		{
			name:     "style matching is case insensitive",
			style:    "EXCITABLE",
			contains: []string{"EXCITABLE style", "WHAT A PLAY!"},
		},
		{
			name:     "unknown style passes through",
			style:    "shakespearean",
			contains: []string{"shakespearean style", "10-15 seconds"},
			excludes: []string{"WHAT A PLAY!", "positioning", "1980s"},
		},
		{
			name:     "keywords are joined",
			style:    "analytical",
			keywords: []string{"dunk", "fast break"},
			contains: []string{"focusing on these elements: dunk, fast break"},
		},
		{
			name:     "no keywords omits the focus clause",
			style:    "excitable",
			excludes: []string{"focusing on these elements"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildPrompt(tt.style, tt.keywords)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("buildPrompt() missing %q in:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("buildPrompt() should not contain %q in:\n%s", unwanted, got)
				}
			}
		})
	}
}
