// Package collection holds generic slice helpers.
package collection

// Map transforms each element of s with fn. The result is never nil, so it
// encodes as a JSON array even when s is empty.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}
