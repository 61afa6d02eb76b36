package reid

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func absFloat64(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
