package bigo

// Similarity tiers.
const (
	SimilarityExact  = 1.0
	SimilarityFamily = 0.9
	SimilarityNear   = 0.7
	SimilarityFar    = 0.3
)

// nearFamilies lists family pairs that are one step apart. Lookups check both orders.
var nearFamilies = map[[2]string]bool{
	{FamilyLinear, FamilyLinearithmic}: true,
	{FamilyLinear, FamilyQuadratic}:    true,
}

// Similarity scores two complexity expressions in [0,1]: 1.0 when the normalized
// forms match, 0.9 within the same family, 0.7 for near families (n vs n log n,
// n vs n^2) and 0.3 otherwise. Empty input scores 0.
func Similarity(a, b string) float64 {
	an, bn := Normalize(a), Normalize(b)
	if an == "" || bn == "" {
		return 0.0
	}
	if an == bn {
		return SimilarityExact
	}

	af, bf := Family(an), Family(bn)
	if af == bf {
		return SimilarityFamily
	}
	if nearFamilies[[2]string{af, bf}] || nearFamilies[[2]string{bf, af}] {
		return SimilarityNear
	}
	return SimilarityFar
}
