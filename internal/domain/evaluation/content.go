package evaluation

import "strings"

// AnalyzeContent scans the transcript for the ruleset keyword lists.
func (e *Engine) AnalyzeContent(transcript string, items []Item) ContentAnalysisResult {
	r := e.rules.Content
	tokens := tokenize(transcript)
	return ContentAnalysisResult{
		AnswerCompleteness:    e.placeholder(r.AnswerCompleteness),
		Relevance:             e.placeholder(r.Relevance),
		ProfessionalTermUsage: e.placeholder(r.ProfessionalTermUsage),
		ServiceOrientation:    e.ServiceOrientation(tokens),
		ProblemSolvingSkill:   e.placeholder(r.ProblemSolvingSkill),
		CommunicationSkill:    e.placeholder(r.CommunicationSkill),
		KeywordAnalysis:       e.AnalyzeKeywords(tokens, items),
	}
}

// ServiceOrientation awards PointsPerServiceHit per service keyword hit, capped at 100.
func (e *Engine) ServiceOrientation(tokens []string) ScoreDetail {
	r := e.rules.Content
	var hits int
	for _, kw := range r.ServiceKeywords {
		n, _ := countKeyword(tokens, kw)
		hits += n
	}
	score := clamp(float64(hits)*r.PointsPerServiceHit, 0, 100)

	description := r.ServiceWeak
	if hits > r.ServiceStrongCount {
		description = r.ServiceStrong
	}
	suggestion := r.ServiceStrongTip
	if hits < r.ServiceWeakCount {
		suggestion = r.ServiceWeakTip
	}
	return e.detail(score, description, suggestion)
}

func (e *Engine) AnalyzeKeywords(tokens []string, items []Item) KeywordAnalysis {
	r := e.rules.Content
	return KeywordAnalysis{
		ServiceKeywords:      detect(r.ServiceKeywords, tokens, items),
		ProfessionalKeywords: detect(r.ProfessionalKeywords, tokens, items),
		PositiveKeywords:     detect(r.PositiveKeywords, tokens, items),
		ConfidenceKeywords:   []DetectedKeyword{},
		FormalLanguageUsage:  r.FormalLanguageUsage,
	}
}

// tokenize lower-cases and splits on whitespace.
func tokenize(transcript string) []string {
	return strings.Fields(strings.ToLower(transcript))
}

// countKeyword counts tokens containing kw and returns the first such token.
func countKeyword(tokens []string, kw string) (int, string) {
	kw = strings.ToLower(kw)
	if kw == "" {
		return 0, ""
	}
	var n int
	var first string
	for _, t := range tokens {
		if strings.Contains(t, kw) {
			if n == 0 {
				first = t
			}
			n++
		}
	}
	return n, first
}

func detect(keywords, tokens []string, items []Item) []DetectedKeyword {
	out := []DetectedKeyword{}
	for _, kw := range keywords {
		n, first := countKeyword(tokens, kw)
		if n == 0 {
			continue
		}
		out = append(out, DetectedKeyword{
			Keyword:         kw,
			Count:           n,
			Timestamps:      keywordTimestamps(kw, items),
			Context:         first,
			Appropriateness: "APPROPRIATE",
		})
	}
	return out
}

func keywordTimestamps(kw string, items []Item) []float64 {
	kw = strings.ToLower(kw)
	ts := []float64{}
	for _, it := range items {
		if it.Type != "" && it.Type != "pronunciation" {
			continue
		}
		if it.HasTiming && strings.Contains(strings.ToLower(it.Content), kw) {
			ts = append(ts, it.StartTime)
		}
	}
	return ts
}
