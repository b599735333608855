package evaluation

import "math"

// AnalyzeVisual scores the face-detection frames. Only the facing direction is
// derived from the frames; the sub-scores are placeholder rules.
func (e *Engine) AnalyzeVisual(faces []Face) VisualAnalysisResult {
	r := e.rules.Visual
	return VisualAnalysisResult{
		Posture:                e.placeholder(r.Posture),
		EyeContact:             e.placeholder(r.EyeContact),
		FacialExpression:       e.placeholder(r.FacialExpression),
		ProfessionalAppearance: e.placeholder(r.ProfessionalAppearance),
		Confidence:             e.placeholder(r.Confidence),
		EmotionStability:       e.placeholder(r.EmotionStability),
		GestureAnalysis:        e.AnalyzeGestures(faces),
	}
}

func (e *Engine) AnalyzeGestures(faces []Face) GestureAnalysis {
	r := e.rules.Visual
	return GestureAnalysis{
		HeadMovement:    r.HeadMovement,
		HandGestures:    r.HandGestures,
		BodyStability:   r.BodyStability,
		FacingDirection: e.Facing(faces),
	}
}

// Facing averages head pose over frames that carry one. Frames within
// FrontalDegrees on yaw and pitch count toward eye contact.
func (e *Engine) Facing(faces []Face) FacingDetail {
	r := e.rules.Visual
	var yaws, pitches []float64
	var rollSum float64
	var frontal int
	for _, f := range faces {
		if !f.HasPose {
			continue
		}
		yaws = append(yaws, f.Yaw)
		pitches = append(pitches, f.Pitch)
		rollSum += f.Roll
		if math.Abs(f.Yaw) <= r.FrontalDegrees && math.Abs(f.Pitch) <= r.FrontalDegrees {
			frontal++
		}
	}
	if len(yaws) == 0 {
		return r.Facing
	}

	n := float64(len(yaws))
	meanYaw, sdYaw := meanStd(yaws)
	meanPitch, sdPitch := meanStd(pitches)
	stability := "STABLE"
	if sdYaw > r.StableDeviation || sdPitch > r.StableDeviation {
		stability = "UNSTABLE"
	}
	return FacingDetail{
		AverageYaw:           meanYaw,
		AveragePitch:         meanPitch,
		AverageRoll:          rollSum / n,
		Stability:            stability,
		EyeContactPercentage: float64(frontal) / n * 100,
	}
}

// meanStd returns the mean and population standard deviation of xs (non-empty).
func meanStd(xs []float64) (float64, float64) {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(xs)))
}
