package domain

import "strings"

// DetectedObject is a single labeled detection with its confidence score.
type DetectedObject struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // [0,1]
}

// VisionSummary is the immutable output of perceptual analysis of one image.
// Objects are ordered by descending confidence as emitted by the detector and
// are not deduplicated. Colors hold up to five coarse names, most-frequent-first.
type VisionSummary struct {
	Objects []DetectedObject `json:"objects"`
	OCRText string           `json:"ocr_text"`
	Colors  []string         `json:"colors"`
}

// IsEmpty reports whether the summary carries no signal at all.
func (v VisionSummary) IsEmpty() bool {
	return len(v.Objects) == 0 && v.OCRText == "" && len(v.Colors) == 0
}

// Labels returns the detected labels in confidence order.
func (v VisionSummary) Labels() []string {
	labels := make([]string, len(v.Objects))
	for i, o := range v.Objects {
		labels[i] = o.Label
	}
	return labels
}

// OCRTokens splits the OCR text on whitespace.
func (v VisionSummary) OCRTokens() []string {
	return strings.Fields(v.OCRText)
}
