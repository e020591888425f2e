package scoring

// Weights of the hybrid score. The rubric signal dominates; the semantic
// signal corrects for answers that match the reference despite weak form.
const (
	RubricWeight   = 0.6
	SemanticWeight = 0.4
)

// Fuse combines the rubric and semantic scores into the final score.
// Pure, total function; inputs are assumed to lie in [0,5] already, which
// keeps the result in [0,5].
func Fuse(rubric, semantic float64) float64 {
	return RubricWeight*rubric + SemanticWeight*semantic
}
