package analysis

import (
	"realitycheck/internal/model"
	"strings"
	"testing"
)

func TestBuildPromptToneAndFocus(t *testing.T) {
	tests := []struct {
		name      string
		opts      model.AnalysisOptions
		wantTone  string
		wantFocus string
	}{
		{
			name:      "defaults when unset",
			opts:      model.AnalysisOptions{},
			wantTone:  "Be brutally honest and critical.",
			wantFocus: "Focus especially on technical and innovative differentiation.",
		},
		{
			name:      "garbage values fall back",
			opts:      model.AnalysisOptions{Tone: "sarcastic", Focus: "pricing"},
			wantTone:  "Be brutally honest and critical.",
			wantFocus: "Focus especially on technical and innovative differentiation.",
		},
		{
			name:      "neutral UX",
			opts:      model.AnalysisOptions{Tone: model.ToneNeutral, Focus: model.FocusUX},
			wantTone:  "Be objective and neutral.",
			wantFocus: "Focus especially on UX/UI and usability issues.",
		},
		{
			name:      "friendly AI",
			opts:      model.AnalysisOptions{Tone: model.ToneFriendly, Focus: model.FocusAI},
			wantTone:  "Be supportive and friendly.",
			wantFocus: "Focus on AI/automation features and limitations.",
		},
		{
			name:      "focus is case sensitive",
			opts:      model.AnalysisOptions{Focus: "ux"},
			wantTone:  "Be brutally honest and critical.",
			wantFocus: "Focus especially on technical and innovative differentiation.",
		},
	}

	allTones := []string{
		"Be brutally honest and critical.",
		"Be objective and neutral.",
		"Be supportive and friendly.",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt("Notion", tt.opts)
			if !strings.Contains(prompt, tt.wantTone) {
				t.Errorf("prompt missing tone fragment %q", tt.wantTone)
			}
			if !strings.Contains(prompt, tt.wantFocus) {
				t.Errorf("prompt missing focus fragment %q", tt.wantFocus)
			}

			count := 0
			for _, tone := range allTones {
				if strings.Contains(prompt, tone) {
					count++
				}
			}
			if count != 1 {
				t.Errorf("prompt contains %d tone fragments, want exactly 1", count)
			}
		})
	}
}

func TestBuildPromptLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit *int
		want  string
	}{
		{"omitted", nil, "up to 5 similar tools"},
		{"zero", model.Limit(0), "up to 1 similar tools"},
		{"negative", model.Limit(-4), "up to 1 similar tools"},
		{"in range", model.Limit(7), "up to 7 similar tools"},
		{"upper bound", model.Limit(15), "up to 15 similar tools"},
		{"too large", model.Limit(999), "up to 15 similar tools"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt("Linear", model.AnalysisOptions{ResultLimit: tt.limit})
			if !strings.Contains(prompt, tt.want) {
				t.Errorf("prompt does not request %q", tt.want)
			}
		})
	}
}

func TestBuildPromptLayout(t *testing.T) {
	prompt := BuildPrompt("Figma", model.AnalysisOptions{})

	if !strings.HasPrefix(prompt, `Analyze the SaaS product "Figma".`) {
		t.Errorf("prompt does not start with product line: %q", strings.SplitN(prompt, "\n", 2)[0])
	}

	for _, want := range []string{
		"Tool Name, Pros, Cons, Gaps/Needs",
		"| Tool Name | Pros | Cons | Gaps/Needs |",
		"|-----------|------|------|------------|",
		"\n## Summary\n",
		"\n## Product Ideas\n",
		"**Title 1**\n- feature 1\n",
		"**Title 3**\n- feature 1\n- feature 2\n- feature 3\n- feature 4\n- feature 5",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if BuildPrompt("Figma", model.AnalysisOptions{}) != prompt {
		t.Error("BuildPrompt is not deterministic")
	}
}
