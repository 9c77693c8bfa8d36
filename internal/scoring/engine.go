// Package scoring predicts audience engagement for a post from
// structural and textual heuristics only. Scoring is pure and
// deterministic: the same content and hashtags always produce the
// same breakdown, and no input can make it fail.
package scoring

import (
	"math"
)

// Factor weights, summing to 1.00
const (
	weightContentLength = 0.15
	weightReadability   = 0.15
	weightStructure     = 0.15
	weightCTA           = 0.15
	weightHashtags      = 0.10
	weightEmojis        = 0.10
	weightQuestions     = 0.10
	weightFormatting    = 0.10
)

// recommendThreshold is the sub-score below which a factor earns a
// recommendation
const recommendThreshold = 70

// Factors holds the eight independent sub-scores, each 0-100
type Factors struct {
	ContentLength int `json:"content_length"`
	Readability   int `json:"readability"`
	Structure     int `json:"structure"`
	CTA           int `json:"cta"`
	Hashtags      int `json:"hashtags"`
	Emojis        int `json:"emojis"`
	Questions     int `json:"questions"`
	Formatting    int `json:"formatting"`
}

// Breakdown is the full result of scoring a post
type Breakdown struct {
	Score           int      `json:"score"`
	Factors         Factors  `json:"factors"`
	Potential       string   `json:"potential"`
	Recommendations []string `json:"recommendations"`
}

// Score computes the weighted engagement breakdown for content and its
// hashtag annotation
func Score(content, hashtags string) *Breakdown {
	factors := Factors{
		ContentLength: scoreContentLength(content),
		Readability:   scoreReadability(content),
		Structure:     scoreStructure(content),
		CTA:           scoreCTA(content),
		Hashtags:      scoreHashtags(content, hashtags),
		Emojis:        scoreEmojis(content),
		Questions:     scoreQuestions(content),
		Formatting:    scoreFormatting(content),
	}

	weighted := weightContentLength*float64(factors.ContentLength) +
		weightReadability*float64(factors.Readability) +
		weightStructure*float64(factors.Structure) +
		weightCTA*float64(factors.CTA) +
		weightHashtags*float64(factors.Hashtags) +
		weightEmojis*float64(factors.Emojis) +
		weightQuestions*float64(factors.Questions) +
		weightFormatting*float64(factors.Formatting)

	score := clamp(int(math.Round(weighted)), 0, 100)

	return &Breakdown{
		Score:           score,
		Factors:         factors,
		Potential:       potentialLabel(score),
		Recommendations: recommendations(factors),
	}
}

// potentialLabel maps a final score to its categorical label
func potentialLabel(score int) string {
	switch {
	case score >= 90:
		return "Exceptional - This post has viral potential"
	case score >= 80:
		return "Excellent - Expect strong engagement"
	case score >= 70:
		return "Very Good - Above average performance likely"
	case score >= 60:
		return "Good - Solid engagement expected"
	case score >= 50:
		return "Fair - Moderate engagement expected"
	case score >= 40:
		return "Below Average - Consider revising before posting"
	default:
		return "Poor - Significant improvements needed"
	}
}

// recommendations emits one fixed message per under-performing factor,
// in a stable order. A factor contributes at most one message.
func recommendations(f Factors) []string {
	var recs []string

	if f.ContentLength < recommendThreshold {
		recs = append(recs, "Aim for 150-300 words for optimal engagement")
	}
	if f.CTA < recommendThreshold {
		recs = append(recs, "Add a clear call-to-action to encourage interaction")
	}
	if f.Hashtags < recommendThreshold {
		recs = append(recs, "Use 3-5 relevant hashtags to increase discoverability")
	}
	if f.Structure < recommendThreshold {
		recs = append(recs, "Break up your content with line breaks and lists")
	}
	if f.Emojis < recommendThreshold {
		recs = append(recs, "Add 2-5 emojis to make your post more approachable")
	}
	if f.Questions < recommendThreshold {
		recs = append(recs, "Ask a question to invite responses")
	}
	if f.Formatting < recommendThreshold {
		recs = append(recs, "Highlight key points with caps or concrete numbers")
	}

	if len(recs) == 0 {
		recs = append(recs, "Great job! Your post is well-optimized for engagement")
	}
	return recs
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
