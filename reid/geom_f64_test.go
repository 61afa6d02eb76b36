package reid

import (
	"math"
	"testing"
)

const (
	eps = 0.00001
)

func TestEuclideanDistance(t *testing.T) {
	p1 := Point{X: 341, Y: 264}
	p2 := Point{X: 421, Y: 427}
	correctAnswer := 181.57367
	answer := euclideanDistance(p1, p2)
	if math.Abs(answer-correctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correctAnswer)
	}
}

func TestRectangleTopLeft(t *testing.T) {
	rect := NewRect(10, 20, 30, 40)
	if rect.Width != 30 || rect.Height != 40 {
		t.Errorf("Wrong extent: %vx%v", rect.Width, rect.Height)
	}
	if rect.TopLeft() != (Point{X: 10, Y: 20}) {
		t.Errorf("Wrong top-left corner: %v", rect.TopLeft())
	}
}
