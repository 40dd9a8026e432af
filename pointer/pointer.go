// Package pointer contains small generic helpers for taking pointers to values and
// dereferencing them safely.
package pointer

// From returns a pointer to v. Useful for populating optional struct fields from
// literals.
func From[T any](v T) *T {
	return &v
}

// ValueOrZero dereferences v, returning the zero value of T when v is nil.
func ValueOrZero[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}

	return *v
}
