package reid

import (
	"math"
)

const (
	distanceWeight       = 0.6
	dissimilarityWeight  = 0.4
	dissimilarityScaling = 100.0
)

// matchScore combines positional distance and appearance similarity. Lower is better.
func matchScore(distance, similarity float64) float64 {
	return distanceWeight*distance + dissimilarityWeight*(1-similarity)*dissimilarityScaling
}

// buildScoreMatrix is helper function to create score matrix: rows = players, columns = detections.
// Pairs which are too far apart hold +Inf.
func buildScoreMatrix(players []*Player, detections []Detection, maxDistance float64, useMotionPrediction bool) [][]float64 {
	scores := make([][]float64, len(players))
	for i, player := range players {
		anchor := player.anchor(useMotionPrediction)
		row := make([]float64, len(detections))
		for j := range detections {
			distance := euclideanDistance(anchor, detections[j].Position())
			if !(distance < maxDistance) {
				row[j] = math.Inf(1)
				continue
			}
			similarity := FeatureSimilarity(player.Features, detections[j].Features)
			row[j] = matchScore(distance, similarity)
		}
		scores[i] = row
	}
	return scores
}

// performGreedyMatching lets every player (rows in given order) claim its best not yet claimed detection.
// Returns: a slice of [2]int, where each element is {playerIndex, detectionIndex}.
func performGreedyMatching(scores [][]float64, numDetections int) [][2]int {
	matches := make([][2]int, 0, len(scores))
	claimed := make([]bool, numDetections)
	for i := range scores {
		bestScore := math.Inf(1)
		bestDetIdx := -1
		for j := 0; j < numDetections; j++ {
			if claimed[j] {
				continue
			}
			if scores[i][j] < bestScore {
				bestScore = scores[i][j]
				bestDetIdx = j
			}
		}
		if bestDetIdx != -1 {
			matches = append(matches, [2]int{i, bestDetIdx})
			claimed[bestDetIdx] = true
		}
	}
	return matches
}

// performHungarianMatching solves the assignment problem over gated scores globally:
// it maximizes number of matched pairs first, then minimizes their total score.
// Returns: a slice of [2]int, where each element is {playerIndex, detectionIndex}, ordered by player index.
func performHungarianMatching(scores [][]float64, numDetections int) [][2]int {
	numPlayers := len(scores)
	if numPlayers == 0 || numDetections == 0 {
		return [][2]int{}
	}
	worst := 0.0
	for i := range scores {
		for j := 0; j < numDetections; j++ {
			if !math.IsInf(scores[i][j], 1) && scores[i][j] > worst {
				worst = scores[i][j]
			}
		}
	}
	// Gated pairs and padding cost more than any possible sum of eligible scores
	paddedSize := maxInt(numPlayers, numDetections)
	forbidden := (worst+1.0)*float64(paddedSize) + 1.0
	cost := make([][]float64, paddedSize)
	for i := 0; i < paddedSize; i++ {
		cost[i] = make([]float64, paddedSize)
		for j := 0; j < paddedSize; j++ {
			cost[i][j] = forbidden
			if i < numPlayers && j < numDetections && !math.IsInf(scores[i][j], 1) {
				cost[i][j] = scores[i][j]
			}
		}
	}
	assignment := solveAssignment(cost)
	matches := make([][2]int, 0, numPlayers)
	for playerIdx := 0; playerIdx < numPlayers; playerIdx++ {
		detIdx := assignment[playerIdx]
		if detIdx < 0 || detIdx >= numDetections || math.IsInf(scores[playerIdx][detIdx], 1) {
			continue
		}
		matches = append(matches, [2]int{playerIdx, detIdx})
	}
	return matches
}
