package scoring

import (
	"regexp"
	"strings"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	listPatternRe   = regexp.MustCompile(`(?m)^\s*([-•*]|\d+[.)])\s`)
	capsWordRe      = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	numericRe       = regexp.MustCompile(`\d+%|[$€£]\d|\d`)
	hashtagTokenRe  = regexp.MustCompile(`#\w+`)
)

// Strong CTA phrases; any literal match scores the factor at 100
var strongCTAPhrases = []string{
	"let me know",
	"share your thoughts",
	"comment below",
	"what do you think",
	"drop a comment",
	"join the conversation",
	"dm me",
	"sign up",
	"register now",
	"learn more",
}

// Medium CTA keywords; a match scores 70 when no strong phrase is present
var mediumCTAKeywords = []string{
	"comment",
	"share",
	"follow",
	"thoughts",
	"agree",
	"try",
	"join",
}

// scoreContentLength rates the word count against the LinkedIn sweet spot
func scoreContentLength(content string) int {
	words := len(strings.Fields(content))
	switch {
	case words >= 150 && words <= 300:
		return 100
	case words >= 100 && words <= 400:
		return 80
	case words >= 50 && words <= 500:
		return 60
	case words < 50:
		return 30
	default:
		return 40
	}
}

// scoreReadability rates average sentence length with a bonus for a low
// share of long words
func scoreReadability(content string) int {
	words := strings.Fields(content)
	if len(words) == 0 {
		return 50
	}

	sentences := 0
	for _, s := range sentenceSplitRe.Split(content, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}
	avgWords := float64(len(words)) / float64(sentences)

	score := 50
	switch {
	case avgWords >= 10 && avgWords <= 20:
		score += 30
	case avgWords >= 8 && avgWords <= 25:
		score += 20
	case avgWords < 8:
		score += 10
	}

	longWords := 0
	for _, w := range words {
		if len(w) > 12 {
			longWords++
		}
	}
	longFraction := float64(longWords) / float64(len(words))
	switch {
	case longFraction <= 0.05:
		score += 20
	case longFraction <= 0.10:
		score += 15
	case longFraction <= 0.20:
		score += 10
	}

	return clamp(score, 0, 100)
}

// scoreStructure rates visual structure: paragraph breaks, lists, and a
// short opening sentence
func scoreStructure(content string) int {
	score := 50

	lineBreaks := strings.Count(content, "\n")
	if lineBreaks >= 3 {
		score += 20
	} else if lineBreaks >= 1 {
		score += 10
	}

	if listPatternRe.MatchString(content) {
		score += 15
	}

	if first := firstSentence(content); first != "" && len(strings.Fields(first)) <= 15 {
		score += 15
	}

	return clamp(score, 0, 100)
}

func firstSentence(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	if idx := strings.IndexAny(trimmed, ".!?"); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}

// scoreCTA rates the call-to-action strength from fixed phrase sets
func scoreCTA(content string) int {
	lower := strings.ToLower(content)

	for _, phrase := range strongCTAPhrases {
		if strings.Contains(lower, phrase) {
			return 100
		}
	}
	for _, keyword := range mediumCTAKeywords {
		if strings.Contains(lower, keyword) {
			return 70
		}
	}
	if strings.Contains(content, "?") {
		return 50
	}
	return 30
}

// scoreHashtags rates the distinct hashtag count across content and the
// annotation. The annotation is usually extracted from the content, so a
// tag appearing in both counts once.
func scoreHashtags(content, hashtags string) int {
	seen := make(map[string]struct{})
	for _, tag := range hashtagTokenRe.FindAllString(content, -1) {
		seen[strings.ToLower(tag)] = struct{}{}
	}
	for _, tag := range hashtagTokenRe.FindAllString(hashtags, -1) {
		seen[strings.ToLower(tag)] = struct{}{}
	}
	count := len(seen)
	switch {
	case count >= 3 && count <= 5:
		return 100
	case count >= 2 && count <= 7:
		return 80
	case count >= 1 && count <= 10:
		return 60
	case count == 0:
		return 20
	default:
		return 40
	}
}

// scoreEmojis rates emoji usage via Unicode range matching
func scoreEmojis(content string) int {
	count := 0
	for _, r := range content {
		if isEmoji(r) {
			count++
		}
	}
	switch {
	case count >= 2 && count <= 5:
		return 100
	case count >= 1 && count <= 7:
		return 80
	case count == 0:
		return 50
	default:
		return 40
	}
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF, // symbols and pictographs
		r >= 0x1F600 && r <= 0x1F64F, // emoticons
		r >= 0x1F680 && r <= 0x1F6FF, // transport
		r >= 0x1F900 && r <= 0x1F9FF, // supplemental symbols
		r >= 0x1FA70 && r <= 0x1FAFF, // extended-A
		r >= 0x2600 && r <= 0x26FF, // miscellaneous symbols
		r >= 0x2700 && r <= 0x27BF: // dingbats
		return true
	}
	return false
}

// scoreQuestions rates question usage
func scoreQuestions(content string) int {
	count := strings.Count(content, "?")
	switch {
	case count >= 1 && count <= 3:
		return 100
	case count == 0:
		return 40
	default:
		return 60
	}
}

// scoreFormatting rates emphasis: a few ALL-CAPS words and concrete
// numbers both read as deliberate highlighting
func scoreFormatting(content string) int {
	score := 50

	caps := len(capsWordRe.FindAllString(content, -1))
	if caps >= 1 && caps <= 3 {
		score += 25
	}

	if numericRe.MatchString(content) {
		score += 25
	}

	return clamp(score, 0, 100)
}
