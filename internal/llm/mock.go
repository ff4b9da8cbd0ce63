package llm

import (
	"context"
	"fmt"
	"regexp"
)

// MockClient returns a canned, well-formed analysis. It is used when no API
// key is configured so the rest of the pipeline still works end to end.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) Name() string {
	return "mock"
}

var mockProductRe = regexp.MustCompile(`Analyze the SaaS product "(.*)"\.`)

func (c *MockClient) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	product := "the product"
	if m := mockProductRe.FindStringSubmatch(prompt); m != nil {
		product = m[1]
	}

	return fmt.Sprintf(`| Tool Name | Pros | Cons | Gaps/Needs |
|-----------|------|------|------------|
| %[1]s | Established brand | Crowded feature set | Simpler onboarding |
| %[1]s Lite | Cheap entry tier | Limited integrations | Team workflows |
| Open Source %[1]s | Self-hostable | Maintenance burden | Managed hosting |

---

## Summary

Mock analysis for %[1]s - configure an LLM API key for real insights.

---

## Product Ideas

**Focused %[1]s Alternative**
- Opinionated defaults
- One-click import
- Usage-based pricing
- Offline mode
- Public roadmap

**Team Insights Layer**
- Activity dashboards
- Weekly digests
- Role-based views
- Slack alerts
- CSV export

**Automation Companion**
- Trigger library
- Visual workflow editor
- Webhook support
- Scheduled runs
- Audit log
`, product), nil
}
