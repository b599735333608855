package evaluation

import "time"

// Result is the full interview evaluation report. Built per request, never persisted.
type Result struct {
	InterviewID      string                `json:"interviewId"`
	CandidateName    string                `json:"candidateName"`
	EvaluationDate   time.Time             `json:"evaluationDate"`
	OverallScore     float64               `json:"overallScore"`
	OverallGrade     string                `json:"overallGrade"`
	SpeechAnalysis   SpeechAnalysisResult  `json:"speechAnalysis"`
	VisualAnalysis   VisualAnalysisResult  `json:"visualAnalysis"`
	ContentAnalysis  ContentAnalysisResult `json:"contentAnalysis"`
	Recommendations  []string              `json:"recommendations"`
	DetailedFeedback string                `json:"detailedFeedback"`
	AIFeedback       string                `json:"aiFeedback,omitempty"`
}

// ScoreDetail is a (score, grade, description, suggestion) tuple.
// Placeholder marks values that come from a fixed rule instead of the input documents.
type ScoreDetail struct {
	Score                 float64 `json:"score"`
	Grade                 string  `json:"grade"`
	Description           string  `json:"description"`
	ImprovementSuggestion string  `json:"improvementSuggestion"`
	Placeholder           bool    `json:"placeholder,omitempty"`
}

// SpeechAnalysisResult is derived from the transcription document.
type SpeechAnalysisResult struct {
	Clarity               ScoreDetail   `json:"clarity"`
	Fluency               ScoreDetail   `json:"fluency"`
	Pace                  ScoreDetail   `json:"pace"`
	Volume                ScoreDetail   `json:"volume"`
	PauseAnalysis         PauseAnalysis `json:"pauseAnalysis"`
	TotalSpeakingTime     float64       `json:"totalSpeakingTime"`
	WordCount             int           `json:"wordCount"`
	AverageWordsPerMinute float64       `json:"averageWordsPerMinute"`
}

type PauseAnalysis struct {
	TotalPauses          int     `json:"totalPauses"`
	AveragePauseDuration float64 `json:"averagePauseDuration"`
	LongestPause         float64 `json:"longestPause"`
	PauseFrequency       float64 `json:"pauseFrequency"`
	AppropriatePauses    int     `json:"appropriatePauses"`
	ExcessivePauses      int     `json:"excessivePauses"`
}

// VisualAnalysisResult is derived from the face-detection document.
type VisualAnalysisResult struct {
	Posture                ScoreDetail     `json:"posture"`
	EyeContact             ScoreDetail     `json:"eyeContact"`
	FacialExpression       ScoreDetail     `json:"facialExpression"`
	ProfessionalAppearance ScoreDetail     `json:"professionalAppearance"`
	Confidence             ScoreDetail     `json:"confidence"`
	EmotionStability       ScoreDetail     `json:"emotionStability"`
	GestureAnalysis        GestureAnalysis `json:"gestureAnalysis"`
}

type GestureAnalysis struct {
	HeadMovement    MovementDetail `json:"headMovement"`
	HandGestures    MovementDetail `json:"handGestures"`
	BodyStability   MovementDetail `json:"bodyStability"`
	FacingDirection FacingDetail   `json:"facingDirection"`
}

// MovementDetail frequency is HIGH|MEDIUM|LOW, appropriateness APPROPRIATE|EXCESSIVE|INSUFFICIENT.
type MovementDetail struct {
	Frequency       string `json:"frequency" yaml:"frequency"`
	Appropriateness string `json:"appropriateness" yaml:"appropriateness"`
	Description     string `json:"description" yaml:"description"`
}

type FacingDetail struct {
	AverageYaw           float64 `json:"averageYaw" yaml:"averageYaw"`
	AveragePitch         float64 `json:"averagePitch" yaml:"averagePitch"`
	AverageRoll          float64 `json:"averageRoll" yaml:"averageRoll"`
	Stability            string  `json:"stability" yaml:"stability"`
	EyeContactPercentage float64 `json:"eyeContactPercentage" yaml:"eyeContactPercentage"`
}

// ContentAnalysisResult is derived from the transcript text.
type ContentAnalysisResult struct {
	AnswerCompleteness    ScoreDetail     `json:"answerCompleteness"`
	Relevance             ScoreDetail     `json:"relevance"`
	ProfessionalTermUsage ScoreDetail     `json:"professionalTermUsage"`
	ServiceOrientation    ScoreDetail     `json:"serviceOrientation"`
	ProblemSolvingSkill   ScoreDetail     `json:"problemSolvingSkill"`
	CommunicationSkill    ScoreDetail     `json:"communicationSkill"`
	KeywordAnalysis       KeywordAnalysis `json:"keywordAnalysis"`
}

type KeywordAnalysis struct {
	ServiceKeywords      []DetectedKeyword `json:"serviceKeywords"`
	ProfessionalKeywords []DetectedKeyword `json:"professionalKeywords"`
	PositiveKeywords     []DetectedKeyword `json:"positiveKeywords"`
	ConfidenceKeywords   []DetectedKeyword `json:"confidenceKeywords"`
	FormalLanguageUsage  float64           `json:"formalLanguageUsage"`
}

type DetectedKeyword struct {
	Keyword         string    `json:"keyword"`
	Count           int       `json:"count"`
	Timestamps      []float64 `json:"timestamps"`
	Context         string    `json:"context"`
	Appropriateness string    `json:"appropriateness"`
}

// Input bundles the two raw result documents for one interview.
type Input struct {
	InterviewID   string
	CandidateName string
	Transcription []byte // speech-to-text result JSON
	VideoAnalysis []byte // face-detection result JSON
	EvaluatedAt   time.Time
}
