// Package collection provides generic slice helpers in the spirit of
// Laravel's Collection.
//
//	tags := collection.Map(p.Tags, func(t models.Tag) string { return t.Name })
package collection

// Map transforms each element of s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}
