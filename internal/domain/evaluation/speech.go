package evaluation

import "strings"

// AnalyzeSpeech scores clarity, pace, fluency and volume of a transcribed answer.
func (e *Engine) AnalyzeSpeech(transcript string, items []Item) SpeechAnalysisResult {
	speakingTime := e.SpeakingTime(items)
	wordCount := len(strings.Fields(transcript))

	var wpm float64
	if speakingTime > 0 {
		wpm = float64(wordCount) * 60.0 / speakingTime
	}

	pauses := e.AnalyzePauses(items)
	return SpeechAnalysisResult{
		Clarity:               e.Clarity(items),
		Fluency:               e.Fluency(pauses, wpm),
		Pace:                  e.Pace(wpm),
		Volume:                e.Volume(items),
		PauseAnalysis:         pauses,
		TotalSpeakingTime:     speakingTime,
		WordCount:             wordCount,
		AverageWordsPerMinute: wpm,
	}
}

// SpeakingTime is a fixed placeholder until item timings are aggregated.
func (e *Engine) SpeakingTime(_ []Item) float64 {
	return e.rules.Speech.SpeakingTimeSeconds
}

// Clarity is the mean recognition confidence scaled to 0-100.
// Without any parsable confidence the score is 0.
func (e *Engine) Clarity(items []Item) ScoreDetail {
	var sum float64
	var n int
	for _, it := range items {
		if it.HasConfidence {
			sum += it.Confidence
			n++
		}
	}
	var score float64
	if n > 0 {
		score = clamp(sum/float64(n)*100, 0, 100)
	}

	r := e.rules.Speech
	suggestion := r.ClarityKeep
	if score < r.ClarityKeepScore {
		suggestion = r.ClarityImprove
	}
	return e.detail(score, pickText(r.ClarityDescriptions, score), suggestion)
}

// Pace scores words per minute against the inclusive pace bands.
func (e *Engine) Pace(wpm float64) ScoreDetail {
	r := e.rules.Speech
	score := r.PaceFallback
	for _, b := range r.PaceBands {
		if wpm >= b.Min && wpm <= b.Max {
			score = b.Score
			break
		}
	}

	description, suggestion := r.PaceGood, r.PaceGoodTip
	switch {
	case wpm < r.SlowWPM:
		description, suggestion = r.PaceSlow, r.PaceSlowTip
	case wpm > r.FastWPM:
		description, suggestion = r.PaceFast, r.PaceFastTip
	}
	return e.detail(score, description, suggestion)
}

func (e *Engine) Fluency(_ PauseAnalysis, _ float64) ScoreDetail {
	return e.placeholder(e.rules.Speech.Fluency)
}

func (e *Engine) Volume(_ []Item) ScoreDetail {
	return e.placeholder(e.rules.Speech.Volume)
}

// AnalyzePauses is not implemented yet and reports no pauses.
func (e *Engine) AnalyzePauses(_ []Item) PauseAnalysis {
	return PauseAnalysis{}
}
