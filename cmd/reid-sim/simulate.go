package main

import (
	"math"
	"math/rand"

	"github.com/LdDl/player-reid/reid"
)

// Jersey colors, one per simulated player slot
var palette = [][3]float64{
	{255, 0, 0},
	{0, 255, 0},
	{0, 0, 255},
	{255, 255, 0},
	{255, 0, 255},
	{0, 255, 255},
	{255, 128, 0},
	{128, 0, 255},
	{255, 192, 203},
	{165, 42, 42},
}

// detector emits synthetic detections of players sweeping across the field
type detector struct {
	cfg SimulationConfig
	rng *rand.Rand
}

func newDetector(cfg SimulationConfig, seed int64) *detector {
	return &detector{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (d *detector) detect(frame int) []reid.Detection {
	width := d.cfg.Width
	height := d.cfg.Height
	numPlayers := d.cfg.MinPlayers + d.rng.Intn(d.cfg.MaxPlayers-d.cfg.MinPlayers+1)
	detections := make([]reid.Detection, 0, numPlayers)
	for i := 0; i < numPlayers; i++ {
		baseX := float64(i)*width/float64(numPlayers) + math.Mod(float64(frame)*2, width)
		baseY := height*0.3 + math.Sin(float64(frame)*0.1+float64(i))*height*0.4

		x := clamp(baseX+(d.rng.Float64()-0.5)*20, 0, width-50)
		y := clamp(baseY+(d.rng.Float64()-0.5)*20, 0, height-80)

		if d.rng.Float64() >= d.cfg.Visibility {
			continue
		}
		color := palette[i%len(palette)]
		bbox := reid.NewRect(x, y, 40+d.rng.Float64()*20, 60+d.rng.Float64()*20)
		confidence := 0.7 + d.rng.Float64()*0.3
		features := reid.NewFeatureVector(color[0], color[1], color[2], d.rng.Float64()*0.5+0.75, 0.6+d.rng.Float64()*0.2)
		detections = append(detections, reid.NewDetection(bbox, confidence, features))
	}
	return detections
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
