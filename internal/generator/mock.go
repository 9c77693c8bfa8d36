package generator

import (
	"context"
	"fmt"
	"strings"
)

// Mock is the terminal fallback provider. It deterministically composes
// a plausible post from the request parameters and never fails, so the
// chain always produces something.
type Mock struct{}

// NewMock creates the mock provider
func NewMock() *Mock {
	return &Mock{}
}

// Name returns the provider name
func (m *Mock) Name() string {
	return "mock"
}

// Generate composes deterministic content from params
func (m *Mock) Generate(_ context.Context, params Params) (string, error) {
	topic := strings.TrimSpace(params.Topic)
	if topic == "" {
		topic = "an idea worth sharing"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here is what nobody tells you about %s.\n\n", topic)
	fmt.Fprintf(&b, "I spent the last few months looking at %s from every angle, "+
		"and the biggest lesson was not the one I expected. "+
		"The fundamentals matter more than the tactics.\n\n", topic)

	if params.Audience != "" {
		fmt.Fprintf(&b, "If you work in %s, this applies double.\n\n", params.Audience)
	}

	b.WriteString("Three things that actually moved the needle:\n")
	b.WriteString("- Start smaller than feels comfortable\n")
	b.WriteString("- Measure one thing, not ten\n")
	b.WriteString("- Share the results before they feel ready\n\n")

	fmt.Fprintf(&b, "What has your experience with %s been?", topic)

	if params.CallToAction != "" {
		fmt.Fprintf(&b, " %s", strings.TrimSpace(params.CallToAction))
	} else {
		b.WriteString(" Let me know in the comments.")
	}

	return b.String(), nil
}
