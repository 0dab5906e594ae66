package anyval

// Ellipsis is the single character appended when Truncate cuts a string.
const Ellipsis = "…"

// Truncate cuts s to at most limit characters and appends an ellipsis when a
// cut actually happened. The cut point is a raw rune index; no word-boundary
// adjustment. A non-positive limit returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + Ellipsis
}
