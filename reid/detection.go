package reid

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidDetection is returned for detections with malformed fields
	ErrInvalidDetection = errors.New("invalid detection")
	// ErrInvalidConfig is returned for tracker configuration which can't be used
	ErrInvalidConfig = errors.New("invalid tracker configuration")
	// ErrSessionNotFound is returned when session pool does not contain requested session
	ErrSessionNotFound = errors.New("session not found")
)

// Detection is a single object observed on a single frame.
// (X, Y) is top-left corner of bounding box.
type Detection struct {
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Confidence float64       `json:"confidence"`
	Features   FeatureVector `json:"features"`
}

// NewDetection creates new detection from bounding box, confidence and appearance
func NewDetection(bbox Rectangle, confidence float64, features FeatureVector) Detection {
	return Detection{
		X:          bbox.X,
		Y:          bbox.Y,
		Width:      bbox.Width,
		Height:     bbox.Height,
		Confidence: confidence,
		Features:   features,
	}
}

// BBox returns detection's bounding box
func (d Detection) BBox() Rectangle {
	return NewRect(d.X, d.Y, d.Width, d.Height)
}

// Position returns position used for matching (top-left corner)
func (d Detection) Position() Point {
	return d.BBox().TopLeft()
}

// ValidateDetection checks that detection could be fed to the tracker.
// Returned error wraps ErrInvalidDetection.
func ValidateDetection(d Detection) error {
	if !isFinite(d.X, d.Y, d.Width, d.Height) {
		return errors.Wrapf(ErrInvalidDetection, "non-finite bbox (%v, %v, %v, %v)", d.X, d.Y, d.Width, d.Height)
	}
	if d.Width < 0 || d.Height < 0 {
		return errors.Wrapf(ErrInvalidDetection, "negative extent %vx%v", d.Width, d.Height)
	}
	if !isFinite(d.Confidence) || d.Confidence < 0 || d.Confidence > 1 {
		return errors.Wrapf(ErrInvalidDetection, "confidence %v is out of [0, 1]", d.Confidence)
	}
	if !d.Features.isFinite() {
		return errors.Wrapf(ErrInvalidDetection, "non-finite features %+v", d.Features)
	}
	if !d.Features.colorInRange() {
		return errors.Wrapf(ErrInvalidDetection, "color %v is out of [0, %v]", d.Features.Color, maxColorValue)
	}
	if d.Features.Size <= 0 || d.Features.AspectRatio <= 0 {
		return errors.Wrapf(ErrInvalidDetection, "non-positive size %v or aspect ratio %v", d.Features.Size, d.Features.AspectRatio)
	}
	return nil
}
