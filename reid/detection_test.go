package reid

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestValidateDetection(t *testing.T) {
	features := NewFeatureVector(10, 10, 10, 1, 0.7)
	valid := []Detection{
		NewDetection(NewRect(0, 0, 10, 10), 0.9, features),
		NewDetection(NewRect(-5, -5, 0, 0), 0, features),
		NewDetection(NewRect(100, 200, 30, 60), 1, features),
		NewDetection(NewRect(0, 0, 10, 10), 0.5, NewFeatureVector(0, 255, 0, 0.1, 3)),
	}
	for i, d := range valid {
		if err := ValidateDetection(d); err != nil {
			t.Errorf("Detection %d should be valid: %v", i, err)
		}
	}

	invalid := []Detection{
		NewDetection(NewRect(math.NaN(), 0, 10, 10), 0.9, features),
		NewDetection(NewRect(0, math.Inf(1), 10, 10), 0.9, features),
		NewDetection(NewRect(0, 0, math.Inf(-1), 10), 0.9, features),
		NewDetection(NewRect(0, 0, -1, 10), 0.9, features),
		NewDetection(NewRect(0, 0, 10, -0.5), 0.9, features),
		NewDetection(NewRect(0, 0, 10, 10), -0.1, features),
		NewDetection(NewRect(0, 0, 10, 10), 1.01, features),
		NewDetection(NewRect(0, 0, 10, 10), math.NaN(), features),
		NewDetection(NewRect(0, 0, 10, 10), 0.9, NewFeatureVector(math.NaN(), 0, 0, 1, 0.7)),
		NewDetection(NewRect(0, 0, 10, 10), 0.9, NewFeatureVector(0, 0, 0, math.Inf(1), 0.7)),
		NewDetection(NewRect(0, 0, 10, 10), 0.9, NewFeatureVector(-5000, 0, 0, 1, 0.7)),
		NewDetection(NewRect(0, 0, 10, 10), 0.9, NewFeatureVector(0, 255.5, 0, 1, 0.7)),
		NewDetection(NewRect(0, 0, 10, 10), 0.9, NewFeatureVector(0, 0, 0, 0, 0.7)),
		NewDetection(NewRect(0, 0, 10, 10), 0.9, NewFeatureVector(0, 0, 0, 1, -0.7)),
	}
	for i, d := range invalid {
		err := ValidateDetection(d)
		if err == nil {
			t.Errorf("Detection %d should be invalid", i)
			continue
		}
		if !errors.Is(err, ErrInvalidDetection) {
			t.Errorf("Detection %d: error should wrap ErrInvalidDetection, got %v", i, err)
		}
	}
}

func TestDetectionGeometry(t *testing.T) {
	d := NewDetection(NewRect(3, 4, 10, 20), 0.5, FeatureVector{})
	if d.Position() != (Point{X: 3, Y: 4}) {
		t.Errorf("Wrong position: %v", d.Position())
	}
	if d.BBox() != NewRect(3, 4, 10, 20) {
		t.Errorf("Wrong bbox: %v", d.BBox())
	}
}
