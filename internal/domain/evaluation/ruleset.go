package evaluation

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRuleset is returned when a ruleset fails validation.
var ErrInvalidRuleset = errors.New("invalid evaluation ruleset")

// GradeThreshold maps a lower score bound (inclusive) to a letter grade.
type GradeThreshold struct {
	Min   float64 `yaml:"min"`
	Grade string  `yaml:"grade"`
}

// ScoreBand awards Score when a value falls inside [Min, Max].
type ScoreBand struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Score float64 `yaml:"score"`
}

// TextBand selects Text when a score is >= Min. Bands are checked in order.
type TextBand struct {
	Min  float64 `yaml:"min"`
	Text string  `yaml:"text"`
}

// PlaceholderRule is a fixed evaluator output used where no real analysis exists yet.
type PlaceholderRule struct {
	Score       float64 `yaml:"score"`
	Description string  `yaml:"description"`
	Suggestion  string  `yaml:"suggestion"`
}

// Weights of the overall score. They must sum to 1.
type Weights struct {
	Clarity            float64 `yaml:"clarity"`
	Fluency            float64 `yaml:"fluency"`
	VisualConfidence   float64 `yaml:"visualConfidence"`
	FacialExpression   float64 `yaml:"facialExpression"`
	ServiceOrientation float64 `yaml:"serviceOrientation"`
}

func (w Weights) sum() float64 {
	return w.Clarity + w.Fluency + w.VisualConfidence + w.FacialExpression + w.ServiceOrientation
}

func (w Weights) all() []float64 {
	return []float64{w.Clarity, w.Fluency, w.VisualConfidence, w.FacialExpression, w.ServiceOrientation}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

type SpeechRules struct {
	SpeakingTimeSeconds float64 `yaml:"speakingTimeSeconds"`

	ClarityDescriptions []TextBand `yaml:"clarityDescriptions"`
	ClarityKeepScore    float64    `yaml:"clarityKeepScore"`
	ClarityImprove      string     `yaml:"clarityImprove"`
	ClarityKeep         string     `yaml:"clarityKeep"`

	PaceBands    []ScoreBand `yaml:"paceBands"`
	PaceFallback float64     `yaml:"paceFallback"`
	SlowWPM      float64     `yaml:"slowWpm"`
	FastWPM      float64     `yaml:"fastWpm"`
	PaceSlow     string      `yaml:"paceSlow"`
	PaceFast     string      `yaml:"paceFast"`
	PaceGood     string      `yaml:"paceGood"`
	PaceSlowTip  string      `yaml:"paceSlowTip"`
	PaceFastTip  string      `yaml:"paceFastTip"`
	PaceGoodTip  string      `yaml:"paceGoodTip"`

	Fluency PlaceholderRule `yaml:"fluency"`
	Volume  PlaceholderRule `yaml:"volume"`
}

type VisualRules struct {
	Posture                PlaceholderRule `yaml:"posture"`
	EyeContact             PlaceholderRule `yaml:"eyeContact"`
	FacialExpression       PlaceholderRule `yaml:"facialExpression"`
	ProfessionalAppearance PlaceholderRule `yaml:"professionalAppearance"`
	Confidence             PlaceholderRule `yaml:"confidence"`
	EmotionStability       PlaceholderRule `yaml:"emotionStability"`

	HeadMovement  MovementDetail `yaml:"headMovement"`
	HandGestures  MovementDetail `yaml:"handGestures"`
	BodyStability MovementDetail `yaml:"bodyStability"`

	// Facing is used when no frame carries pose data.
	Facing FacingDetail `yaml:"facing"`
	// FrontalDegrees bounds |yaw| and |pitch| of a frame counted as eye contact.
	FrontalDegrees float64 `yaml:"frontalDegrees"`
	// StableDeviation bounds the yaw/pitch standard deviation of a STABLE head.
	StableDeviation float64 `yaml:"stableDeviation"`
}

type ContentRules struct {
	ServiceKeywords      []string `yaml:"serviceKeywords"`
	ProfessionalKeywords []string `yaml:"professionalKeywords"`
	PositiveKeywords     []string `yaml:"positiveKeywords"`

	PointsPerServiceHit float64 `yaml:"pointsPerServiceHit"`
	ServiceStrongCount  int     `yaml:"serviceStrongCount"`
	ServiceWeakCount    int     `yaml:"serviceWeakCount"`
	ServiceStrong       string  `yaml:"serviceStrong"`
	ServiceWeak         string  `yaml:"serviceWeak"`
	ServiceWeakTip      string  `yaml:"serviceWeakTip"`
	ServiceStrongTip    string  `yaml:"serviceStrongTip"`

	AnswerCompleteness    PlaceholderRule `yaml:"answerCompleteness"`
	Relevance             PlaceholderRule `yaml:"relevance"`
	ProfessionalTermUsage PlaceholderRule `yaml:"professionalTermUsage"`
	ProblemSolvingSkill   PlaceholderRule `yaml:"problemSolvingSkill"`
	CommunicationSkill    PlaceholderRule `yaml:"communicationSkill"`
	FormalLanguageUsage   float64         `yaml:"formalLanguageUsage"`
}

type RecommendationRules struct {
	Threshold          float64 `yaml:"threshold"`
	Clarity            string  `yaml:"clarity"`
	Confidence         string  `yaml:"confidence"`
	ServiceOrientation string  `yaml:"serviceOrientation"`
}

// Ruleset holds every weight, threshold, keyword list and fixed text the engine uses.
type Ruleset struct {
	Grades          []GradeThreshold    `yaml:"grades"`
	FallbackGrade   string              `yaml:"fallbackGrade"`
	Weights         Weights             `yaml:"weights"`
	Recommendations RecommendationRules `yaml:"recommendations"`
	Speech          SpeechRules         `yaml:"speech"`
	Visual          VisualRules         `yaml:"visual"`
	Content         ContentRules        `yaml:"content"`
}

// DefaultRuleset returns the built-in flight attendant interview rules.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Grades: []GradeThreshold{
			{Min: 90, Grade: "A"},
			{Min: 80, Grade: "B"},
			{Min: 70, Grade: "C"},
			{Min: 60, Grade: "D"},
		},
		FallbackGrade: "F",
		Weights: Weights{
			Clarity:            0.20,
			Fluency:            0.15,
			VisualConfidence:   0.25,
			FacialExpression:   0.15,
			ServiceOrientation: 0.25,
		},
		Recommendations: RecommendationRules{
			Threshold:          75,
			Clarity:            "발음을 더욱 명확하게 하기 위한 발성 연습을 권장합니다",
			Confidence:         "자신감 있는 표정과 자세를 연습해 보세요",
			ServiceOrientation: "고객 서비스에 대한 구체적인 경험과 사례를 준비해 보세요",
		},
		Speech: SpeechRules{
			SpeakingTimeSeconds: 60,
			ClarityDescriptions: []TextBand{
				{Min: 90, Text: "매우 명확한 발음"},
				{Min: 80, Text: "명확한 발음"},
				{Min: 70, Text: "보통 수준의 발음"},
				{Min: 60, Text: "다소 불명확한 발음"},
				{Min: math.Inf(-1), Text: "발음 개선 필요"},
			},
			ClarityKeepScore: 80,
			ClarityImprove:   "발음 연습과 정확한 발성 훈련을 권장합니다.",
			ClarityKeep:      "현재 수준을 유지하세요.",
			PaceBands: []ScoreBand{
				{Min: 120, Max: 180, Score: 100},
				{Min: 100, Max: 220, Score: 85},
				{Min: 80, Max: 250, Score: 70},
			},
			PaceFallback: 50,
			SlowWPM:      80,
			FastWPM:      250,
			PaceSlow:     "말하기 속도가 너무 느립니다",
			PaceFast:     "말하기 속도가 너무 빠릅니다",
			PaceGood:     "적절한 말하기 속도입니다",
			PaceSlowTip:  "조금 더 활발하게 말씀해 보세요",
			PaceFastTip:  "천천히 또박또박 말씀해 보세요",
			PaceGoodTip:  "현재 속도를 유지하세요",
			Fluency:      PlaceholderRule{Score: 75, Description: "원활한 유창성", Suggestion: "계속 유지하세요"},
			Volume:       PlaceholderRule{Score: 80, Description: "적절한 음성 크기", Suggestion: "현 수준 유지"},
		},
		Visual: VisualRules{
			Posture:                PlaceholderRule{Score: 75, Description: "안정적인 자세", Suggestion: "현 상태 유지"},
			EyeContact:             PlaceholderRule{Score: 80, Description: "적절한 시선 처리", Suggestion: "좋습니다"},
			FacialExpression:       PlaceholderRule{Score: 85, Description: "긍정적인 표정", Suggestion: "훌륭합니다"},
			ProfessionalAppearance: PlaceholderRule{Score: 90, Description: "전문적인 외모", Suggestion: "완벽합니다"},
			Confidence:             PlaceholderRule{Score: 78, Description: "적절한 자신감", Suggestion: "더 당당하게"},
			EmotionStability:       PlaceholderRule{Score: 82, Description: "안정적인 감정", Suggestion: "좋습니다"},
			HeadMovement:           MovementDetail{Frequency: "MEDIUM", Appropriateness: "APPROPRIATE", Description: "적절한 머리 움직임"},
			HandGestures:           MovementDetail{Frequency: "LOW", Appropriateness: "APPROPRIATE", Description: "절제된 손동작"},
			BodyStability:          MovementDetail{Frequency: "HIGH", Appropriateness: "APPROPRIATE", Description: "안정적인 자세"},
			Facing: FacingDetail{
				AverageYaw:           2.0,
				AveragePitch:         -1.0,
				AverageRoll:          0.5,
				Stability:            "STABLE",
				EyeContactPercentage: 85.0,
			},
			FrontalDegrees:  15,
			StableDeviation: 10,
		},
		Content: ContentRules{
			ServiceKeywords: []string{
				"고객", "서비스", "안전", "친절", "도움", "배려", "소통", "협력",
				"책임감", "정확성", "신속성", "전문성", "예의", "미소", "감사",
			},
			ProfessionalKeywords: []string{
				"승무원", "항공", "비행", "기내", "안전벨트", "구명조끼", "비상상황",
				"응급처치", "기장", "부기장", "승객", "탑승", "착륙", "이륙",
			},
			PositiveKeywords: []string{
				"좋다", "훌륭하다", "최선", "열정", "노력", "성장", "발전", "개선",
				"향상", "긍정적", "적극적", "자신감", "도전", "성취",
			},
			PointsPerServiceHit:   10,
			ServiceStrongCount:    5,
			ServiceWeakCount:      3,
			ServiceStrong:         "서비스 지향적 답변",
			ServiceWeak:           "서비스 마인드 보완 필요",
			ServiceWeakTip:        "고객 서비스와 관련된 경험을 더 구체적으로 언급해 보세요",
			ServiceStrongTip:      "훌륭한 서비스 마인드입니다",
			AnswerCompleteness:    PlaceholderRule{Score: 70, Description: "답변 완성도 보통", Suggestion: "더 구체적인 답변 필요"},
			Relevance:             PlaceholderRule{Score: 80, Description: "질문과 연관성 높음", Suggestion: "좋습니다"},
			ProfessionalTermUsage: PlaceholderRule{Score: 65, Description: "전문용어 사용 부족", Suggestion: "항공 관련 용어 학습 권장"},
			ProblemSolvingSkill:   PlaceholderRule{Score: 75, Description: "문제해결 능력 양호", Suggestion: "사례 중심 답변 권장"},
			CommunicationSkill:    PlaceholderRule{Score: 80, Description: "원활한 의사소통", Suggestion: "현 수준 유지"},
			FormalLanguageUsage:   0.8,
		},
	}
}

// LoadRuleset reads a YAML override on top of DefaultRuleset.
// Fields missing from the file keep their default values; lists are replaced wholesale.
func LoadRuleset(path string) (Ruleset, error) {
	rs := DefaultRuleset()
	data, err := os.ReadFile(path)
	if err != nil {
		return Ruleset{}, fmt.Errorf("read ruleset %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return Ruleset{}, fmt.Errorf("parse ruleset %s: %w", path, err)
	}
	if err := rs.Validate(); err != nil {
		return Ruleset{}, err
	}
	return rs, nil
}

// Validate checks the invariants the engine relies on.
func (rs Ruleset) Validate() error {
	for _, w := range rs.Weights.all() {
		if !finite(w) || w < 0 {
			return fmt.Errorf("%w: weight %v must be a finite non-negative number", ErrInvalidRuleset, w)
		}
	}
	if math.Abs(rs.Weights.sum()-1) > 1e-9 {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidRuleset, rs.Weights.sum())
	}
	if len(rs.Grades) == 0 {
		return fmt.Errorf("%w: no grade thresholds", ErrInvalidRuleset)
	}
	for i, g := range rs.Grades {
		if !finite(g.Min) {
			return fmt.Errorf("%w: grade %q has bound %v", ErrInvalidRuleset, g.Grade, g.Min)
		}
		if i > 0 && g.Min >= rs.Grades[i-1].Min {
			return fmt.Errorf("%w: grade thresholds must be strictly descending", ErrInvalidRuleset)
		}
	}
	if rs.FallbackGrade == "" {
		return fmt.Errorf("%w: fallback grade is empty", ErrInvalidRuleset)
	}
	if len(rs.Speech.PaceBands) == 0 {
		return fmt.Errorf("%w: no pace bands", ErrInvalidRuleset)
	}
	for _, b := range rs.Speech.PaceBands {
		if !finite(b.Min) || !finite(b.Max) || !finite(b.Score) || b.Min > b.Max {
			return fmt.Errorf("%w: pace band [%v, %v] -> %v", ErrInvalidRuleset, b.Min, b.Max, b.Score)
		}
	}
	// -Inf is allowed as a catch-all text band
	for _, b := range rs.Speech.ClarityDescriptions {
		if math.IsNaN(b.Min) {
			return fmt.Errorf("%w: clarity description bound is NaN", ErrInvalidRuleset)
		}
	}
	for name, p := range rs.placeholders() {
		if !finite(p.Score) {
			return fmt.Errorf("%w: %s score %v", ErrInvalidRuleset, name, p.Score)
		}
	}
	if !finite(rs.Content.PointsPerServiceHit) {
		return fmt.Errorf("%w: pointsPerServiceHit %v", ErrInvalidRuleset, rs.Content.PointsPerServiceHit)
	}
	if !finite(rs.Recommendations.Threshold) {
		return fmt.Errorf("%w: recommendation threshold %v", ErrInvalidRuleset, rs.Recommendations.Threshold)
	}
	if !finite(rs.Speech.SpeakingTimeSeconds) || rs.Speech.SpeakingTimeSeconds < 0 {
		return fmt.Errorf("%w: speaking time %v", ErrInvalidRuleset, rs.Speech.SpeakingTimeSeconds)
	}
	return nil
}

func (rs Ruleset) placeholders() map[string]PlaceholderRule {
	return map[string]PlaceholderRule{
		"fluency":                rs.Speech.Fluency,
		"volume":                 rs.Speech.Volume,
		"posture":                rs.Visual.Posture,
		"eyeContact":             rs.Visual.EyeContact,
		"facialExpression":       rs.Visual.FacialExpression,
		"professionalAppearance": rs.Visual.ProfessionalAppearance,
		"confidence":             rs.Visual.Confidence,
		"emotionStability":       rs.Visual.EmotionStability,
		"answerCompleteness":     rs.Content.AnswerCompleteness,
		"relevance":              rs.Content.Relevance,
		"professionalTermUsage":  rs.Content.ProfessionalTermUsage,
		"problemSolvingSkill":    rs.Content.ProblemSolvingSkill,
		"communicationSkill":     rs.Content.CommunicationSkill,
	}
}

// Grade classifies a score with this ruleset's thresholds.
func (rs Ruleset) Grade(score float64) string {
	for _, g := range rs.Grades {
		if score >= g.Min {
			return g.Grade
		}
	}
	return rs.FallbackGrade
}

var defaultRules = DefaultRuleset()

// Grade maps a 0-100 score to A/B/C/D/F using the default thresholds.
func Grade(score float64) string {
	return defaultRules.Grade(score)
}

func pickText(bands []TextBand, score float64) string {
	for _, b := range bands {
		if score >= b.Min {
			return b.Text
		}
	}
	if len(bands) > 0 {
		return bands[len(bands)-1].Text
	}
	return ""
}
