package reid

import (
	"gonum.org/v1/gonum/floats"
)

const (
	// Color channels are expected in [0, 255]
	maxColorValue = 255.0

	colorWeight  = 0.5
	sizeWeight   = 0.3
	aspectWeight = 0.2
)

// FeatureVector is an appearance descriptor produced by detector: dominant color, normalized scale and width/height ratio.
type FeatureVector struct {
	Color       [3]float64 `json:"color"`
	Size        float64    `json:"size"`
	AspectRatio float64    `json:"aspect_ratio"`
}

// NewFeatureVector creates new feature vector
func NewFeatureVector(r, g, b, size, aspectRatio float64) FeatureVector {
	return FeatureVector{
		Color:       [3]float64{r, g, b},
		Size:        size,
		AspectRatio: aspectRatio,
	}
}

func (fv FeatureVector) isFinite() bool {
	return isFinite(fv.Color[0], fv.Color[1], fv.Color[2], fv.Size, fv.AspectRatio)
}

func (fv FeatureVector) colorInRange() bool {
	for _, c := range fv.Color {
		if c < 0 || c > maxColorValue {
			return false
		}
	}
	return true
}

// FeatureSimilarity returns appearance similarity in [0, 1] between two feature vectors.
// Swapping arguments gives the same result.
func FeatureSimilarity(f1, f2 FeatureVector) float64 {
	colorSim := colorSimilarity(f1.Color, f2.Color)
	sizeSim := maxFloat64(0, 1-absFloat64(f1.Size-f2.Size))
	aspectSim := maxFloat64(0, 1-2*absFloat64(f1.AspectRatio-f2.AspectRatio))
	return colorWeight*colorSim + sizeWeight*sizeSim + aspectWeight*aspectSim
}

// colorSimilarity is 1 minus mean absolute channel difference normalized to [0, 1].
// Channels outside [0, 255] can't push it below zero
func colorSimilarity(c1, c2 [3]float64) float64 {
	l1 := floats.Distance(c1[:], c2[:], 1)
	return maxFloat64(0, 1-l1/(maxColorValue*float64(len(c1))))
}

// smooth moves feature vector towards incoming one via exponential moving average:
// new = old*(1-alpha) + incoming*alpha for every channel and scalar independently
func (fv *FeatureVector) smooth(incoming FeatureVector, alpha float64) {
	for i := range fv.Color {
		fv.Color[i] = ema(fv.Color[i], incoming.Color[i], alpha)
	}
	fv.Size = ema(fv.Size, incoming.Size, alpha)
	fv.AspectRatio = ema(fv.AspectRatio, incoming.AspectRatio, alpha)
}

func ema(old, incoming, alpha float64) float64 {
	return old*(1-alpha) + incoming*alpha
}
