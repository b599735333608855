package evaluation

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Item is one timed recognition entry of a transcription document.
type Item struct {
	Type          string
	Content       string
	StartTime     float64
	EndTime       float64
	HasTiming     bool
	Confidence    float64
	HasConfidence bool
}

// Face is one per-frame face-detection entry of a video-analysis document.
type Face struct {
	Timestamp int64
	Yaw       float64
	Pitch     float64
	Roll      float64
	HasPose   bool
	Smiling   bool
	Emotions  []Emotion
}

type Emotion struct {
	Type       string
	Confidence float64
}

// ExtractTranscript returns results.transcripts[0].transcript or "" when absent or malformed.
func ExtractTranscript(doc []byte) string {
	if !gjson.ValidBytes(doc) {
		return ""
	}
	r := gjson.GetBytes(doc, "results.transcripts.0.transcript")
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// ExtractItems returns results.items. Entries that are not objects are skipped.
func ExtractItems(doc []byte) []Item {
	if !gjson.ValidBytes(doc) {
		return nil
	}
	arr := gjson.GetBytes(doc, "results.items")
	if !arr.IsArray() {
		return nil
	}
	var items []Item
	arr.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		it := Item{
			Type:    v.Get("type").String(),
			Content: v.Get("alternatives.0.content").String(),
		}
		start, okStart := number(v.Get("start_time"))
		end, okEnd := number(v.Get("end_time"))
		if okStart && okEnd {
			it.StartTime, it.EndTime, it.HasTiming = start, end, true
		} else if okStart {
			it.StartTime, it.EndTime, it.HasTiming = start, start, true
		}
		if c, ok := number(v.Get("alternatives.0.confidence")); ok {
			it.Confidence, it.HasConfidence = c, true
		}
		items = append(items, it)
		return true
	})
	return items
}

// ExtractFaces returns the Faces list of a face-detection document.
func ExtractFaces(doc []byte) []Face {
	if !gjson.ValidBytes(doc) {
		return nil
	}
	arr := gjson.GetBytes(doc, "Faces")
	if !arr.IsArray() {
		return nil
	}
	var faces []Face
	arr.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		f := Face{Timestamp: v.Get("Timestamp").Int()}
		pose := v.Get("Face.Pose")
		if pose.IsObject() {
			yaw, okYaw := number(pose.Get("Yaw"))
			pitch, okPitch := number(pose.Get("Pitch"))
			roll, _ := number(pose.Get("Roll"))
			if okYaw && okPitch {
				f.Yaw, f.Pitch, f.Roll, f.HasPose = yaw, pitch, roll, true
			}
		}
		f.Smiling = v.Get("Face.Smile.Value").Bool()
		v.Get("Face.Emotions").ForEach(func(_, e gjson.Result) bool {
			conf, _ := number(e.Get("Confidence"))
			f.Emotions = append(f.Emotions, Emotion{Type: e.Get("Type").String(), Confidence: conf})
			return true
		})
		faces = append(faces, f)
		return true
	})
	return faces
}

// number accepts JSON numbers and numeric strings (transcription output quotes its numbers).
func number(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
