package utils

// Ptr returns a pointer to v, avoiding a temporary variable when an optional
// field expects a pointer.
//
// Example:
//
//	cfg := ai.GenerationConfig{Temperature: utils.Ptr(0.0)}
func Ptr[T any](v T) *T {
	return &v
}
