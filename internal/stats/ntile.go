package stats

// Ntile assigns n ranked rows to buckets with equal-frequency semantics:
// the first n mod buckets groups hold ceil(n/buckets) rows, the rest
// floor(n/buckets). Returns the 1-indexed bucket number per rank
// position (rows are assumed sorted; ties keep their input order).
// With n < buckets the first n buckets get one row each, so bucket
// numbers stay monotone with rank.
func Ntile(n, buckets int) []int {
	if n <= 0 || buckets <= 0 {
		return nil
	}

	base := n / buckets
	remainder := n % buckets

	assignments := make([]int, 0, n)
	for b := 1; b <= buckets && len(assignments) < n; b++ {
		size := base
		if b <= remainder {
			size++
		}
		for i := 0; i < size; i++ {
			assignments = append(assignments, b)
		}
	}

	return assignments
}
