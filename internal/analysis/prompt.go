package analysis

import (
	"fmt"
	"realitycheck/internal/model"
)

var toneFragments = map[model.Tone]string{
	model.ToneCritical: "Be brutally honest and critical.",
	model.ToneNeutral:  "Be objective and neutral.",
	model.ToneFriendly: "Be supportive and friendly.",
}

var focusFragments = map[model.Focus]string{
	model.FocusInnovation: "Focus especially on technical and innovative differentiation.",
	model.FocusUX:         "Focus especially on UX/UI and usability issues.",
	model.FocusAI:         "Focus on AI/automation features and limitations.",
}

// ToneFragment returns the instruction for a tone, falling back to critical
func ToneFragment(t model.Tone) string {
	if s, ok := toneFragments[t]; ok {
		return s
	}
	return toneFragments[model.ToneCritical]
}

// FocusFragment returns the instruction for a focus, falling back to innovation
func FocusFragment(f model.Focus) string {
	if s, ok := focusFragments[f]; ok {
		return s
	}
	return focusFragments[model.FocusInnovation]
}

// BuildPrompt renders the single prompt sent to the model. The output section
// layout is what Parse is keyed to, so it must not drift.
func BuildPrompt(product string, opts model.AnalysisOptions) string {
	return fmt.Sprintf(`Analyze the SaaS product "%s".
%s
%s
Find and list up to %d similar tools (loose match is OK, pick top with most users if possible).
Return your answer as a Markdown table with columns: Tool Name, Pros, Cons, Gaps/Needs.

Then summarize: what product concept would be most likely to succeed in the current English SaaS market (brutally).

Finally, based on this analysis, suggest 3 brand new SaaS product ideas (not existing yet), each with:
- a short, catchy English title (bold, one line, max 5 words),
- and 5 bullet-pointed specialized features (as a Markdown list).

Format your response exactly like this:

| Tool Name | Pros | Cons | Gaps/Needs |
|-----------|------|------|------------|
| Tool1 | ... | ... | ... |
| Tool2 | ... | ... | ... |

---

## Summary

(summary text here)

---

## Product Ideas

**Title 1**
- feature 1
- feature 2
- feature 3
- feature 4
- feature 5

**Title 2**
- feature 1
- feature 2
- feature 3
- feature 4
- feature 5

**Title 3**
- feature 1
- feature 2
- feature 3
- feature 4
- feature 5`,
		product, ToneFragment(opts.Tone), FocusFragment(opts.Focus), opts.EffectiveLimit())
}
