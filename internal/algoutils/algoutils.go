package algoutils

// this package provides some generic (in both senses of the word) algorithmic conveniences.

func Map[T, S any](in []T, f func(T) S) []S {
	out := make([]S, len(in))
	for i, t := range in {
		out[i] = f(t)
	}
	return out
}

func MapRange[S any](begin, end int, f func(int) S) []S {
	out := make([]S, end-begin)
	for i := begin; i < end; i++ {
		out[i-begin] = f(i)
	}
	return out
}

// IndicesSortedBy returns 0..n-1 ordered by ascending key.
func IndicesSortedBy(n int, key func(int) int) []int {
	out := MapRange(0, n, func(i int) int { return i })
	// insertion sort keeps equal keys in index order
	for i := 1; i < n; i++ {
		for j := i; j > 0 && key(out[j]) < key(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
