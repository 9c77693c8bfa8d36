package scoring

import (
	"strings"
	"testing"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestScoreBoundedAndPure(t *testing.T) {
	inputs := []struct {
		name     string
		content  string
		hashtags string
	}{
		{"empty", "", ""},
		{"single word", "hello", ""},
		{"only punctuation", "?!?!...", ""},
		{"only hashtags", "", "#a #b #c"},
		{"long content", words(1000), ""},
		{"unicode heavy", "🚀🔥💡 こんにちは世界 ✨", "#emoji"},
		{"realistic", "Shipping fast beats perfect. Here is what we learned.\n\nWhat do you think?", "#startups #SaaS"},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			first := Score(tt.content, tt.hashtags)
			if first.Score < 0 || first.Score > 100 {
				t.Errorf("Score out of bounds: %d", first.Score)
			}
			if first.Potential == "" {
				t.Error("Potential label must never be empty")
			}
			if len(first.Recommendations) == 0 {
				t.Error("Recommendations must never be empty")
			}

			second := Score(tt.content, tt.hashtags)
			if first.Score != second.Score || first.Factors != second.Factors {
				t.Error("Score must be deterministic for identical input")
			}
		})
	}
}

func TestScoreContentLength(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		expected int
	}{
		{"sweet spot", 220, 100},
		{"lower sweet spot bound", 150, 100},
		{"upper sweet spot bound", 300, 100},
		{"slightly long", 350, 80},
		{"slightly short", 120, 80},
		{"short", 80, 60},
		{"very long", 450, 60},
		{"too short", 10, 30},
		{"way too long", 600, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreContentLength(words(tt.words)); got != tt.expected {
				t.Errorf("scoreContentLength(%d words) = %d, want %d", tt.words, got, tt.expected)
			}
		})
	}
}

func TestScoreCTA(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"strong phrase", "Interesting take - let me know what you think below.", 100},
		{"strong phrase case insensitive", "LET ME KNOW your view", 100},
		{"medium keyword", "Please share this with your network", 70},
		{"question only", "Is remote work dead?", 50},
		{"no cta", "We released a new feature today.", 30},
		{"empty", "", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreCTA(tt.content); got != tt.expected {
				t.Errorf("scoreCTA(%q) = %d, want %d", tt.content, got, tt.expected)
			}
		})
	}
}

func TestScoreHashtags(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		hashtags string
		expected int
	}{
		{"optimal", "", "#a #b #c #d", 100},
		{"counted across content and annotation", "intro #a body", "#b #c", 100},
		{"tag in both counted once", "intro #growth #saas #startups #experiments", "#growth #saas #startups #experiments", 100},
		{"case-insensitive dedup", "intro #SaaS", "#saas #growth", 80},
		{"repeats collapse", "", "#tag #tag #tag", 60},
		{"two", "", "#a #b", 80},
		{"single", "", "#a", 60},
		{"none", "no tags here", "", 20},
		{"spam", "", "#t1 #t2 #t3 #t4 #t5 #t6 #t7 #t8 #t9 #t10 #t11 #t12", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreHashtags(tt.content, tt.hashtags); got != tt.expected {
				t.Errorf("scoreHashtags(%q, %q) = %d, want %d", tt.content, tt.hashtags, got, tt.expected)
			}
		})
	}
}

func TestScoreEmojis(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"optimal pair", "Big launch 🚀🔥", 100},
		{"single", "Big launch 🚀", 80},
		{"none", "Big launch", 50},
		{"overload", "😀😀😀😀😀😀😀😀", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreEmojis(tt.content); got != tt.expected {
				t.Errorf("scoreEmojis(%q) = %d, want %d", tt.content, got, tt.expected)
			}
		})
	}
}

func TestScoreQuestions(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"one question", "What would you do?", 100},
		{"three questions", "Why? How? When?", 100},
		{"no questions", "A statement.", 40},
		{"too many", "Why? How? When? Where? Who?", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreQuestions(tt.content); got != tt.expected {
				t.Errorf("scoreQuestions(%q) = %d, want %d", tt.content, got, tt.expected)
			}
		})
	}
}

func TestScoreStructure(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"flat wall of text", words(30), 50},
		{"paragraphs", "Short opener.\n\npoint one\n\npoint two", 50 + 20 + 15},
		{"bulleted list", "Lessons learned.\n- ship fast\n- talk to users\n\nend", 50 + 20 + 15 + 15},
		{"single break", "Short opener.\nmore text", 50 + 10 + 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreStructure(tt.content); got != tt.expected {
				t.Errorf("scoreStructure(%q) = %d, want %d", tt.content, got, tt.expected)
			}
		})
	}
}

func TestScoreFormatting(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"caps and numbers", "This is BIG: 50% growth in Q2", 100},
		{"numbers only", "We grew 50% this quarter", 75},
		{"caps only", "This is HUGE news", 75},
		{"plain", "nothing emphasized here", 50},
		{"caps overload", "ONE TWO THREE FOUR shouting", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreFormatting(tt.content); got != tt.expected {
				t.Errorf("scoreFormatting(%q) = %d, want %d", tt.content, got, tt.expected)
			}
		})
	}
}

func TestCTAMonotonicity(t *testing.T) {
	base := words(220) + "\n\n" + "more context here.\n\nlearned a lot this year."
	withCTA := base + " Let me know what resonates?"

	strong := Score(withCTA, "#a #b #c #d")
	weak := Score(base, "#a #b #c #d")

	if strong.Factors.CTA != 100 {
		t.Errorf("Expected cta factor 100 with strong phrase, got %d", strong.Factors.CTA)
	}
	if weak.Factors.CTA != 30 {
		t.Errorf("Expected cta factor 30 without phrase or question, got %d", weak.Factors.CTA)
	}
	if strong.Factors.CTA <= weak.Factors.CTA {
		t.Error("Strong CTA must strictly outscore absent CTA")
	}
}

func TestPotentialLabels(t *testing.T) {
	tests := []struct {
		score  int
		prefix string
	}{
		{95, "Exceptional"},
		{90, "Exceptional"},
		{85, "Excellent"},
		{75, "Very Good"},
		{65, "Good"},
		{55, "Fair"},
		{45, "Below Average"},
		{20, "Poor"},
	}

	for _, tt := range tests {
		label := potentialLabel(tt.score)
		if !strings.HasPrefix(label, tt.prefix) {
			t.Errorf("potentialLabel(%d) = %q, want prefix %q", tt.score, label, tt.prefix)
		}
	}
}

func TestRecommendationsOrderAndDedup(t *testing.T) {
	// Every factor failing produces one message each, in fixed order
	allBad := Factors{
		ContentLength: 30, Readability: 50, Structure: 50, CTA: 30,
		Hashtags: 20, Emojis: 50, Questions: 40, Formatting: 50,
	}
	recs := recommendations(allBad)
	if len(recs) != 7 {
		t.Fatalf("Expected 7 recommendations, got %d: %v", len(recs), recs)
	}

	wantOrder := []string{"150-300 words", "call-to-action", "hashtags", "line breaks", "emojis", "question", "caps or concrete numbers"}
	for i, fragment := range wantOrder {
		if !strings.Contains(recs[i], fragment) {
			t.Errorf("Recommendation %d = %q, want it to mention %q", i, recs[i], fragment)
		}
	}

	seen := map[string]bool{}
	for _, r := range recs {
		if seen[r] {
			t.Errorf("Duplicate recommendation: %q", r)
		}
		seen[r] = true
	}

	// No failures yields the single positive message
	allGood := Factors{
		ContentLength: 100, Readability: 100, Structure: 100, CTA: 100,
		Hashtags: 100, Emojis: 100, Questions: 100, Formatting: 100,
	}
	recs = recommendations(allGood)
	if len(recs) != 1 || !strings.Contains(recs[0], "well-optimized") {
		t.Errorf("Expected single positive message, got: %v", recs)
	}
}

func TestScoreRealisticPost(t *testing.T) {
	content := "We doubled signups in 90 days. Here is what actually moved the needle.\n\n" +
		"First we stopped guessing. Every change ran behind a simple experiment flag. " +
		strings.Repeat("The team reviewed results weekly and cut what failed fast. ", 18) +
		"\n\nWhat would you test first? Let me know below."

	breakdown := Score(content, "#growth #SaaS #startups #experiments")

	if breakdown.Score < 60 {
		t.Errorf("Well-structured post should score at least 60, got %d", breakdown.Score)
	}
	if breakdown.Factors.CTA != 100 {
		t.Errorf("Expected strong cta, got %d", breakdown.Factors.CTA)
	}
	if breakdown.Factors.Hashtags != 100 {
		t.Errorf("Expected optimal hashtag factor, got %d", breakdown.Factors.Hashtags)
	}
	if breakdown.Factors.Questions != 100 {
		t.Errorf("Expected optimal question factor, got %d", breakdown.Factors.Questions)
	}

	anyBelow := breakdown.Factors.ContentLength < recommendThreshold ||
		breakdown.Factors.Readability < recommendThreshold ||
		breakdown.Factors.Structure < recommendThreshold ||
		breakdown.Factors.CTA < recommendThreshold ||
		breakdown.Factors.Hashtags < recommendThreshold ||
		breakdown.Factors.Emojis < recommendThreshold ||
		breakdown.Factors.Questions < recommendThreshold ||
		breakdown.Factors.Formatting < recommendThreshold
	positiveOnly := len(breakdown.Recommendations) == 1 &&
		strings.Contains(breakdown.Recommendations[0], "well-optimized")
	if anyBelow == positiveOnly {
		t.Errorf("Recommendations inconsistent with factors: %+v -> %v",
			breakdown.Factors, breakdown.Recommendations)
	}
}
