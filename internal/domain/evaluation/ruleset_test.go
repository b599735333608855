package evaluation_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/didim-interview/internal/domain/evaluation"
)

func TestDefaultRulesetIsValid(t *testing.T) {
	require.NoError(t, evaluation.DefaultRuleset().Validate())
}

func TestValidateRejectsBadWeights(t *testing.T) {
	rs := evaluation.DefaultRuleset()
	rs.Weights.Clarity = 0.5
	err := rs.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, evaluation.ErrInvalidRuleset)

	_, err = evaluation.NewEngine(rs)
	assert.ErrorIs(t, err, evaluation.ErrInvalidRuleset)
}

func TestValidateRejectsUnorderedGrades(t *testing.T) {
	rs := evaluation.DefaultRuleset()
	rs.Grades = []evaluation.GradeThreshold{{Min: 60, Grade: "D"}, {Min: 90, Grade: "A"}}
	assert.ErrorIs(t, rs.Validate(), evaluation.ErrInvalidRuleset)
}

func TestLoadRulesetOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	body := `
weights:
  clarity: 0.4
  fluency: 0.1
  visualConfidence: 0.2
  facialExpression: 0.1
  serviceOrientation: 0.2
content:
  serviceKeywords: ["customer"]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	rs, err := evaluation.LoadRuleset(path)
	require.NoError(t, err)
	assert.Equal(t, 0.4, rs.Weights.Clarity)
	assert.Equal(t, []string{"customer"}, rs.Content.ServiceKeywords)
	// untouched sections keep their defaults
	assert.Equal(t, evaluation.DefaultRuleset().Grades, rs.Grades)
	assert.Equal(t, 10.0, rs.Content.PointsPerServiceHit)

	e, err := evaluation.NewEngine(rs)
	require.NoError(t, err)
	res := e.AnalyzeContent("Customer care for every CUSTOMER", nil)
	assert.Equal(t, 20.0, res.ServiceOrientation.Score)
}

func TestLoadRulesetInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights:\n  clarity: 0.9\n"), 0o644))

	_, err := evaluation.LoadRuleset(path)
	assert.ErrorIs(t, err, evaluation.ErrInvalidRuleset)

	_, err = evaluation.LoadRuleset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRulesetRejectsNonFiniteNumbers(t *testing.T) {
	cases := map[string]string{
		"nan weight":      "weights:\n  clarity: .nan\n",
		"inf weight":      "weights:\n  clarity: .inf\n",
		"negative weight": "weights:\n  clarity: -0.2\n  fluency: 0.55\n",
		"nan grade":       "grades:\n  - {min: .nan, grade: A}\n",
		"nan pace band":   "speech:\n  paceBands:\n    - {min: .nan, max: 180, score: 100}\n",
		"inverted band":   "speech:\n  paceBands:\n    - {min: 200, max: 100, score: 100}\n",
		"nan placeholder": "visual:\n  confidence: {score: .nan}\n",
		"nan threshold":   "recommendations:\n  threshold: .nan\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := evaluation.LoadRuleset(path)
		assert.ErrorIs(t, err, evaluation.ErrInvalidRuleset, name)
	}
}

func TestValidateRejectsNaNWeight(t *testing.T) {
	rs := evaluation.DefaultRuleset()
	rs.Weights.Clarity = math.NaN()
	assert.ErrorIs(t, rs.Validate(), evaluation.ErrInvalidRuleset)
}
