package prompt

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/didim-interview/internal/domain/evaluation"
)

// GetSystemPrompt: pelatih wawancara pramugari, jawab dalam bahasa Korea
func GetSystemPrompt() string {
	return `You are an experienced flight attendant interview coach. You receive an automated evaluation of one mock interview.
Write one short coaching paragraph in Korean (4 sentences at most, plain text, no markdown, no lists).
Only use the scores and observations provided. Focus on the two weakest areas and give concrete practice advice.
Scores marked (estimated) come from fixed heuristics; do not overstate them.`
}

// GetUserPrompt renders the evaluation as a compact score sheet.
func GetUserPrompt(res *evaluation.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: %s\nOverall: %.1f (%s)\n", res.CandidateName, res.OverallScore, res.OverallGrade)

	s := res.SpeechAnalysis
	line(&b, "clarity", s.Clarity)
	line(&b, "fluency", s.Fluency)
	line(&b, "pace", s.Pace)
	fmt.Fprintf(&b, "words: %d, words per minute: %.1f\n", s.WordCount, s.AverageWordsPerMinute)

	v := res.VisualAnalysis
	line(&b, "eye contact", v.EyeContact)
	line(&b, "facial expression", v.FacialExpression)
	line(&b, "confidence", v.Confidence)
	f := v.GestureAnalysis.FacingDirection
	fmt.Fprintf(&b, "head pose stability: %s, eye contact frames: %.0f%%\n", f.Stability, f.EyeContactPercentage)

	c := res.ContentAnalysis
	line(&b, "service orientation", c.ServiceOrientation)
	line(&b, "relevance", c.Relevance)
	line(&b, "professional terms", c.ProfessionalTermUsage)

	if len(res.Recommendations) > 0 {
		fmt.Fprintf(&b, "recommendations: %s\n", strings.Join(res.Recommendations, " / "))
	}
	return b.String()
}

func line(b *strings.Builder, name string, d evaluation.ScoreDetail) {
	mark := ""
	if d.Placeholder {
		mark = " (estimated)"
	}
	fmt.Fprintf(b, "%s: %.1f %s%s\n", name, d.Score, d.Grade, mark)
}
