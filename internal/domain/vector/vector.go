// Package vector holds the similarity math used by semantic ranking.
package vector

import "math"

// Cosine returns the cosine similarity of a and b in [-1, 1].
//
// The function is total. Vectors of mismatched length are compared over their
// common prefix, with the missing tail treated as zeros; stored note vectors
// can be empty (skipped embedding) or truncated (legacy data) and must never
// break a search. An empty overlap or a zero-norm vector yields -1, which
// sorts such notes below any genuine match.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return -1
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	if normA == 0 || normB == 0 {
		return -1
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
