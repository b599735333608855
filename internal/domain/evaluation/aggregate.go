package evaluation

import "fmt"

// OverallScore is the weighted sum of five sub-scores. Weights are not renormalised.
func (e *Engine) OverallScore(speech SpeechAnalysisResult, visual VisualAnalysisResult, content ContentAnalysisResult) float64 {
	w := e.rules.Weights
	return speech.Clarity.Score*w.Clarity +
		speech.Fluency.Score*w.Fluency +
		visual.Confidence.Score*w.VisualConfidence +
		visual.FacialExpression.Score*w.FacialExpression +
		content.ServiceOrientation.Score*w.ServiceOrientation
}

// Recommendations lists advice for every tracked sub-score under the threshold.
func (e *Engine) Recommendations(speech SpeechAnalysisResult, visual VisualAnalysisResult, content ContentAnalysisResult) []string {
	r := e.rules.Recommendations
	out := []string{}
	if speech.Clarity.Score < r.Threshold {
		out = append(out, r.Clarity)
	}
	if visual.Confidence.Score < r.Threshold {
		out = append(out, r.Confidence)
	}
	if content.ServiceOrientation.Score < r.Threshold {
		out = append(out, r.ServiceOrientation)
	}
	return out
}

const feedbackTemplate = `[음성 평가]
- 발음 명확도: %s
- 말하기 속도: %s

[시각 평가]
- 자신감: %s
- 표정: %s

[내용 평가]
- 서비스 지향성: %s
- 의사소통 능력: %s`

func (e *Engine) DetailedFeedback(speech SpeechAnalysisResult, visual VisualAnalysisResult, content ContentAnalysisResult) string {
	return fmt.Sprintf(feedbackTemplate,
		speech.Clarity.Description,
		speech.Pace.Description,
		visual.Confidence.Description,
		visual.FacialExpression.Description,
		content.ServiceOrientation.Description,
		content.CommunicationSkill.Description,
	)
}
