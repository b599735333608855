package evaluation

import "time"

// Engine scores interviews with a fixed Ruleset. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	rules Ruleset
}

// NewEngine validates rs and returns an engine bound to it.
func NewEngine(rs Ruleset) (*Engine, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &Engine{rules: rs}, nil
}

// DefaultEngine uses DefaultRuleset.
func DefaultEngine() *Engine {
	return &Engine{rules: DefaultRuleset()}
}

// Rules returns a copy of the active ruleset.
func (e *Engine) Rules() Ruleset { return e.rules }

// Evaluate runs speech, visual and content analysis and aggregates them into one report.
// Malformed documents never fail the evaluation; they produce default scores.
func (e *Engine) Evaluate(in Input) *Result {
	transcript := ExtractTranscript(in.Transcription)
	items := ExtractItems(in.Transcription)
	faces := ExtractFaces(in.VideoAnalysis)

	speech := e.AnalyzeSpeech(transcript, items)
	visual := e.AnalyzeVisual(faces)
	content := e.AnalyzeContent(transcript, items)

	overall := e.OverallScore(speech, visual, content)
	at := in.EvaluatedAt
	if at.IsZero() {
		at = time.Now()
	}

	return &Result{
		InterviewID:      in.InterviewID,
		CandidateName:    in.CandidateName,
		EvaluationDate:   at,
		OverallScore:     overall,
		OverallGrade:     e.rules.Grade(overall),
		SpeechAnalysis:   speech,
		VisualAnalysis:   visual,
		ContentAnalysis:  content,
		Recommendations:  e.Recommendations(speech, visual, content),
		DetailedFeedback: e.DetailedFeedback(speech, visual, content),
	}
}

func (e *Engine) detail(score float64, description, suggestion string) ScoreDetail {
	return ScoreDetail{
		Score:                 score,
		Grade:                 e.rules.Grade(score),
		Description:           description,
		ImprovementSuggestion: suggestion,
	}
}

func (e *Engine) placeholder(r PlaceholderRule) ScoreDetail {
	d := e.detail(r.Score, r.Description, r.Suggestion)
	d.Placeholder = true
	return d
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
