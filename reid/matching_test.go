package reid

import (
	"math"
	"reflect"
	"testing"
)

func TestMatchScore(t *testing.T) {
	// 0.6*50 + 0.4*(1-0.75)*100
	correctAnswer := 40.0
	answer := matchScore(50, 0.75)
	if math.Abs(answer-correctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correctAnswer)
	}
}

func TestBuildScoreMatrixGating(t *testing.T) {
	features := NewFeatureVector(50, 50, 50, 1, 0.5)
	players := []*Player{
		newPlayer(1, NewDetection(NewRect(0, 0, 10, 10), 0.9, features), 0, 50, 1.0),
	}
	detections := []Detection{
		NewDetection(NewRect(30, 40, 10, 10), 0.9, features),
		NewDetection(NewRect(60, 80, 10, 10), 0.9, features),
		NewDetection(NewRect(99, 0, 10, 10), 0.9, features),
	}
	scores := buildScoreMatrix(players, detections, 100, false)
	if math.Abs(scores[0][0]-30) > eps {
		t.Errorf("Wrong score for distance 50: %v", scores[0][0])
	}
	// Distance is exactly 100: gate is strict
	if !math.IsInf(scores[0][1], 1) {
		t.Errorf("Detection at max distance should be gated, got score %v", scores[0][1])
	}
	if math.IsInf(scores[0][2], 1) {
		t.Errorf("Detection at distance 99 should be eligible")
	}
}

func TestGreedyMatching(t *testing.T) {
	inf := math.Inf(1)
	scores := [][]float64{
		{24, 30},
		{30, inf},
	}
	matches := performGreedyMatching(scores, 2)
	expected := [][2]int{{0, 0}}
	if !reflect.DeepEqual(matches, expected) {
		t.Errorf("Wrong greedy matches: %v, expected: %v", matches, expected)
	}
}

func TestGreedyMatchingTies(t *testing.T) {
	scores := [][]float64{
		{10, 10, 10},
		{10, 10, 10},
	}
	matches := performGreedyMatching(scores, 3)
	expected := [][2]int{{0, 0}, {1, 1}}
	if !reflect.DeepEqual(matches, expected) {
		t.Errorf("Wrong greedy matches: %v, expected: %v", matches, expected)
	}
}

func TestHungarianMatching(t *testing.T) {
	inf := math.Inf(1)
	scores := [][]float64{
		{24, 30},
		{30, inf},
	}
	matches := performHungarianMatching(scores, 2)
	expected := [][2]int{{0, 1}, {1, 0}}
	if !reflect.DeepEqual(matches, expected) {
		t.Errorf("Wrong hungarian matches: %v, expected: %v", matches, expected)
	}
}

func TestHungarianMatchingRectangular(t *testing.T) {
	scores := [][]float64{
		{50, 10, 20},
	}
	matches := performHungarianMatching(scores, 3)
	expected := [][2]int{{0, 1}}
	if !reflect.DeepEqual(matches, expected) {
		t.Errorf("Wrong hungarian matches: %v, expected: %v", matches, expected)
	}
}

func TestMatchingAllGated(t *testing.T) {
	inf := math.Inf(1)
	scores := [][]float64{
		{inf, inf},
		{inf, inf},
	}
	if matches := performGreedyMatching(scores, 2); len(matches) != 0 {
		t.Errorf("Greedy should not match gated pairs: %v", matches)
	}
	if matches := performHungarianMatching(scores, 2); len(matches) != 0 {
		t.Errorf("Hungarian should not match gated pairs: %v", matches)
	}
	if matches := performHungarianMatching([][]float64{}, 0); len(matches) != 0 {
		t.Errorf("Hungarian should not match empty input: %v", matches)
	}
}
