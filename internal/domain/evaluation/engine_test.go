package evaluation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/didim-interview/internal/domain/evaluation"
)

const demoTranscription = `{
  "jobName": "interview-stt-demo",
  "results": {
    "transcripts": [{"transcript": "안녕하세요 저는 김승무원이라고 합니다. 승무원이 되는 것이 어릴 때부터의 꿈이었고, 고객 서비스에 대한 열정이 있어서 지원하게 되었습니다. 안전을 최우선으로 생각하며 승객들에게 최고의 서비스를 제공하고 싶습니다."}],
    "items": [
      {"start_time": "0.0", "end_time": "1.5", "alternatives": [{"confidence": "0.95", "content": "안녕하세요"}], "type": "pronunciation"},
      {"start_time": "1.6", "end_time": "2.8", "alternatives": [{"confidence": "0.92", "content": "저는"}], "type": "pronunciation"}
    ]
  }
}`

const demoFaces = `{
  "JobStatus": "SUCCEEDED",
  "Faces": [
    {"Timestamp": 1000, "Face": {
      "Smile": {"Value": true, "Confidence": 87.5},
      "Emotions": [{"Type": "HAPPY", "Confidence": 75.2}, {"Type": "CALM", "Confidence": 82.1}],
      "Pose": {"Roll": -1.2, "Yaw": 3.5, "Pitch": -0.8}
    }}
  ]
}`

func TestGradeBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, "F"},
		{59.999, "F"},
		{60, "D"},
		{69.99, "D"},
		{70, "C"},
		{79.5, "C"},
		{80, "B"},
		{89.9, "B"},
		{90, "A"},
		{100, "A"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, evaluation.Grade(tc.score), "score %v", tc.score)
	}
}

func TestGradeMonotonicOverDomain(t *testing.T) {
	rank := map[string]int{"F": 0, "D": 1, "C": 2, "B": 3, "A": 4}
	prev := -1
	for s := 0.0; s <= 100.0; s += 0.25 {
		g := evaluation.Grade(s)
		r, ok := rank[g]
		require.True(t, ok, "unexpected grade %q for %v", g, s)
		assert.GreaterOrEqual(t, r, prev, "grade decreased at %v", s)
		prev = r
	}
}

func TestPaceBands(t *testing.T) {
	e := evaluation.DefaultEngine()
	cases := []struct {
		wpm   float64
		score float64
	}{
		{150, 100},
		{120, 100},
		{180, 100},
		{100, 85},
		{220, 85},
		{90, 70},
		{250, 70},
		{300, 50},
		{79.9, 50},
		{0, 50},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.score, e.Pace(tc.wpm).Score, "wpm %v", tc.wpm)
	}

	assert.Equal(t, "적절한 말하기 속도입니다", e.Pace(90).Description)
	assert.Equal(t, "말하기 속도가 너무 빠릅니다", e.Pace(300).Description)
	assert.Equal(t, "천천히 또박또박 말씀해 보세요", e.Pace(300).ImprovementSuggestion)
	assert.Equal(t, "말하기 속도가 너무 느립니다", e.Pace(50).Description)
}

func TestOverallScoreAllEighty(t *testing.T) {
	e := evaluation.DefaultEngine()
	eighty := evaluation.ScoreDetail{Score: 80}
	speech := evaluation.SpeechAnalysisResult{Clarity: eighty, Fluency: eighty}
	visual := evaluation.VisualAnalysisResult{Confidence: eighty, FacialExpression: eighty}
	content := evaluation.ContentAnalysisResult{ServiceOrientation: eighty}

	assert.Equal(t, 80.0, e.OverallScore(speech, visual, content))
}

func TestServiceOrientationCountsTokens(t *testing.T) {
	e := evaluation.DefaultEngine()

	res := e.AnalyzeContent("저는 고객 서비스를 좋아합니다", nil)
	assert.Equal(t, 20.0, res.ServiceOrientation.Score)
	assert.Equal(t, "F", res.ServiceOrientation.Grade)
	assert.Equal(t, "서비스 마인드 보완 필요", res.ServiceOrientation.Description)
	assert.Equal(t, "고객 서비스와 관련된 경험을 더 구체적으로 언급해 보세요", res.ServiceOrientation.ImprovementSuggestion)

	// one token can hit two keywords
	res = e.AnalyzeContent("고객서비스", nil)
	assert.Equal(t, 20.0, res.ServiceOrientation.Score)
}

func TestServiceOrientationCapped(t *testing.T) {
	e := evaluation.DefaultEngine()
	transcript := "고객 고객 고객 고객 고객 고객 고객 고객 고객 고객 고객 고객"
	res := e.AnalyzeContent(transcript, nil)
	assert.Equal(t, 100.0, res.ServiceOrientation.Score)
	assert.Equal(t, "서비스 지향적 답변", res.ServiceOrientation.Description)
	assert.Equal(t, "훌륭한 서비스 마인드입니다", res.ServiceOrientation.ImprovementSuggestion)
}

func TestClarityFromConfidence(t *testing.T) {
	e := evaluation.DefaultEngine()
	items := []evaluation.Item{
		{Confidence: 0.95, HasConfidence: true},
		{Confidence: 0.92, HasConfidence: true},
		{Type: "punctuation"},
	}
	c := e.Clarity(items)
	assert.InDelta(t, 93.5, c.Score, 1e-9)
	assert.Equal(t, "A", c.Grade)
	assert.Equal(t, "매우 명확한 발음", c.Description)
	assert.Equal(t, "현재 수준을 유지하세요.", c.ImprovementSuggestion)

	over := e.Clarity([]evaluation.Item{{Confidence: 1.5, HasConfidence: true}})
	assert.Equal(t, 100.0, over.Score)

	none := e.Clarity(nil)
	assert.Equal(t, 0.0, none.Score)
	assert.Equal(t, "F", none.Grade)
	assert.Equal(t, "발음 개선 필요", none.Description)
	assert.Equal(t, "발음 연습과 정확한 발성 훈련을 권장합니다.", none.ImprovementSuggestion)
}

func TestEvaluateMalformedDocuments(t *testing.T) {
	e := evaluation.DefaultEngine()
	res := e.Evaluate(evaluation.Input{
		InterviewID:   "iv-1",
		CandidateName: "tester",
		Transcription: []byte("not json"),
		VideoAnalysis: nil,
	})

	require.NotNil(t, res)
	assert.Equal(t, 0, res.SpeechAnalysis.WordCount)
	assert.Equal(t, 0.0, res.SpeechAnalysis.AverageWordsPerMinute)
	assert.Equal(t, 0.0, res.SpeechAnalysis.Clarity.Score)
	assert.Equal(t, 50.0, res.SpeechAnalysis.Pace.Score)
	assert.Equal(t, evaluation.PauseAnalysis{}, res.SpeechAnalysis.PauseAnalysis)
	assert.Equal(t, 0.0, res.ContentAnalysis.ServiceOrientation.Score)
	assert.Equal(t, evaluation.DefaultRuleset().Visual.Facing, res.VisualAnalysis.GestureAnalysis.FacingDirection)
	assert.InDelta(t, 43.5, res.OverallScore, 1e-9)
	assert.Equal(t, "F", res.OverallGrade)
	assert.Len(t, res.Recommendations, 2)
	assert.False(t, res.EvaluationDate.IsZero())
}

func TestEvaluateDemoDocuments(t *testing.T) {
	e := evaluation.DefaultEngine()
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	res := e.Evaluate(evaluation.Input{
		InterviewID:   "demo-interview-001",
		CandidateName: "김승무원",
		Transcription: []byte(demoTranscription),
		VideoAnalysis: []byte(demoFaces),
		EvaluatedAt:   at,
	})

	assert.Equal(t, at, res.EvaluationDate)
	assert.Equal(t, 25, res.SpeechAnalysis.WordCount)
	assert.Equal(t, 60.0, res.SpeechAnalysis.TotalSpeakingTime)
	assert.InDelta(t, 25.0, res.SpeechAnalysis.AverageWordsPerMinute, 1e-9)
	assert.InDelta(t, 93.5, res.SpeechAnalysis.Clarity.Score, 1e-9)
	assert.Equal(t, 40.0, res.ContentAnalysis.ServiceOrientation.Score)
	assert.InDelta(t, 72.2, res.OverallScore, 1e-9)
	assert.Equal(t, "C", res.OverallGrade)
	assert.Equal(t, []string{"고객 서비스에 대한 구체적인 경험과 사례를 준비해 보세요"}, res.Recommendations)

	facing := res.VisualAnalysis.GestureAnalysis.FacingDirection
	assert.InDelta(t, 3.5, facing.AverageYaw, 1e-9)
	assert.InDelta(t, -0.8, facing.AveragePitch, 1e-9)
	assert.InDelta(t, -1.2, facing.AverageRoll, 1e-9)
	assert.Equal(t, "STABLE", facing.Stability)
	assert.Equal(t, 100.0, facing.EyeContactPercentage)

	kw := res.ContentAnalysis.KeywordAnalysis
	require.Len(t, kw.ProfessionalKeywords, 2)
	assert.Equal(t, "승무원", kw.ProfessionalKeywords[0].Keyword)
	assert.Equal(t, 2, kw.ProfessionalKeywords[0].Count)
	assert.Equal(t, "김승무원이라고", kw.ProfessionalKeywords[0].Context)
	assert.Equal(t, "승객", kw.ProfessionalKeywords[1].Keyword)
	require.Len(t, kw.PositiveKeywords, 1)
	assert.Equal(t, "열정", kw.PositiveKeywords[0].Keyword)
	assert.Empty(t, kw.ConfidenceKeywords)

	assert.Contains(t, res.DetailedFeedback, "- 발음 명확도: 매우 명확한 발음")
	assert.Contains(t, res.DetailedFeedback, "- 서비스 지향성: 서비스 마인드 보완 필요")
	assert.Contains(t, res.DetailedFeedback, "- 의사소통 능력: 원활한 의사소통")
}

func TestPlaceholdersAreFlagged(t *testing.T) {
	e := evaluation.DefaultEngine()
	res := e.Evaluate(evaluation.Input{Transcription: []byte(demoTranscription)})

	assert.True(t, res.SpeechAnalysis.Fluency.Placeholder)
	assert.True(t, res.SpeechAnalysis.Volume.Placeholder)
	assert.True(t, res.VisualAnalysis.Confidence.Placeholder)
	assert.True(t, res.ContentAnalysis.CommunicationSkill.Placeholder)
	assert.False(t, res.SpeechAnalysis.Clarity.Placeholder)
	assert.False(t, res.SpeechAnalysis.Pace.Placeholder)
	assert.False(t, res.ContentAnalysis.ServiceOrientation.Placeholder)

	// grades follow the score even for fixed rules
	assert.Equal(t, "B", res.VisualAnalysis.FacialExpression.Grade)
	assert.Equal(t, "C", res.VisualAnalysis.Confidence.Grade)
}

func TestFacingUnstableHead(t *testing.T) {
	e := evaluation.DefaultEngine()
	faces := []evaluation.Face{
		{HasPose: true, Yaw: -30, Pitch: 0},
		{HasPose: true, Yaw: 30, Pitch: 0},
		{HasPose: false},
	}
	f := e.Facing(faces)
	assert.Equal(t, "UNSTABLE", f.Stability)
	assert.Equal(t, 0.0, f.AverageYaw)
	assert.Equal(t, 0.0, f.EyeContactPercentage)
}

func TestKeywordTimestamps(t *testing.T) {
	e := evaluation.DefaultEngine()
	items := []evaluation.Item{
		{Type: "pronunciation", Content: "고객", StartTime: 3.2, EndTime: 3.6, HasTiming: true},
		{Type: "punctuation", Content: "고객"},
	}
	kw := e.AnalyzeContent("고객", items).KeywordAnalysis
	require.Len(t, kw.ServiceKeywords, 1)
	assert.Equal(t, []float64{3.2}, kw.ServiceKeywords[0].Timestamps)
}

func TestRecommendationThreshold(t *testing.T) {
	const (
		clarityTip    = "발음을 더욱 명확하게 하기 위한 발성 연습을 권장합니다"
		confidenceTip = "자신감 있는 표정과 자세를 연습해 보세요"
		serviceTip    = "고객 서비스에 대한 구체적인 경험과 사례를 준비해 보세요"
	)
	cases := []struct {
		name                         string
		clarity, confidence, service float64
		want                         []string
	}{
		{"all at threshold", 75, 75, 75, []string{}},
		{"clarity below", 74.99, 75, 75, []string{clarityTip}},
		{"confidence below", 75, 74.99, 75, []string{confidenceTip}},
		{"service below", 75, 75, 74.99, []string{serviceTip}},
		{"all below", 74.99, 74.99, 74.99, []string{clarityTip, confidenceTip, serviceTip}},
		{"high scores", 100, 90, 80, []string{}},
	}

	e := evaluation.DefaultEngine()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			speech := evaluation.SpeechAnalysisResult{Clarity: evaluation.ScoreDetail{Score: tc.clarity}}
			visual := evaluation.VisualAnalysisResult{Confidence: evaluation.ScoreDetail{Score: tc.confidence}}
			content := evaluation.ContentAnalysisResult{ServiceOrientation: evaluation.ScoreDetail{Score: tc.service}}

			got := e.Recommendations(speech, visual, content)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}
