// Package hashtag categorizes and scores hashtags for relevance, reach,
// and competition. Analysis is pure; persistence of the results is a
// best-effort side effect.
package hashtag

import (
	"regexp"
	"strings"
	"unicode"
)

// Hashtag categories, in precedence order: a tag gets the first one
// that matches.
const (
	CategoryBranded  = "branded"
	CategoryTrending = "trending"
	CategoryNiche    = "niche"
	CategoryBroad    = "broad"
)

// Reach and competition levels
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

var hashtagRe = regexp.MustCompile(`#\w+`)

// Keywords that mark a tag as riding a platform-wide trend
var trendingKeywords = []string{
	"ai",
	"tech",
	"innovation",
	"leadership",
	"career",
	"growth",
	"startup",
	"marketing",
	"productivity",
	"future",
	"data",
	"remote",
	"success",
	"motivation",
}

// Analysis is the scored annotation of a single hashtag
type Analysis struct {
	Tag              string `json:"tag"`
	Category         string `json:"category"`
	RelevanceScore   int    `json:"relevance_score"`
	EstimatedReach   string `json:"estimated_reach"`
	CompetitionLevel string `json:"competition_level"`
}

// Extract returns the hashtag tokens found in text, in order
func Extract(text string) []string {
	return hashtagRe.FindAllString(text, -1)
}

// Analyze extracts hashtags from the annotation string and scores each
// against the post content, truncated to limit entries. Never fails;
// malformed input yields an empty result.
func Analyze(hashtags, content string, limit int) []Analysis {
	tags := hashtagRe.FindAllString(hashtags, -1)
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}

	analyses := make([]Analysis, 0, len(tags))
	for _, tag := range tags {
		level := lengthBucket(tag)
		analyses = append(analyses, Analysis{
			Tag:            tag,
			Category:       categorize(tag, content),
			RelevanceScore: relevance(tag, content),
			// Reach and competition are both derived from tag length
			// alone, so the two fields always carry the same level. A
			// data-backed estimator would replace the competition side.
			EstimatedReach:   level,
			CompetitionLevel: level,
		})
	}
	return analyses
}

// categorize assigns the first matching category in precedence order
func categorize(tag, content string) string {
	body := strings.TrimPrefix(tag, "#")

	if hasDigit(body) || hasUpper(body) || len(body) > 20 {
		return CategoryBranded
	}

	lower := strings.ToLower(body)
	for _, keyword := range trendingKeywords {
		if strings.Contains(lower, keyword) {
			return CategoryTrending
		}
	}

	if strings.Contains(strings.ToLower(content), lower) || len(body) > 15 {
		return CategoryNiche
	}

	return CategoryBroad
}

// relevance scores how strongly the tag ties to the post content
func relevance(tag, content string) int {
	body := strings.TrimPrefix(tag, "#")
	lowerBody := strings.ToLower(body)
	lowerContent := strings.ToLower(content)

	score := 50

	if lowerBody != "" && strings.Contains(lowerContent, lowerBody) {
		score += 30
	}

	for _, word := range splitCamel(body) {
		if len(word) >= 3 && strings.Contains(lowerContent, strings.ToLower(word)) {
			score += 5
		}
	}

	if len(body) > 20 {
		score -= 10
	}

	return clamp(score, 0, 100)
}

// lengthBucket maps tag length to a categorical level: short tags are
// broad (high reach, heavily contested), long tags the reverse
func lengthBucket(tag string) string {
	body := strings.TrimPrefix(tag, "#")
	switch {
	case len(body) <= 10:
		return LevelHigh
	case len(body) <= 15:
		return LevelMedium
	default:
		return LevelLow
	}
}

// splitCamel splits a camelCase tag body into its words
func splitCamel(s string) []string {
	var words []string
	var current strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) && current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
