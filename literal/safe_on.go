//go:build literal_safe

package literal

// SafeMode reports whether Index checks its argument against the logical
// length. It is set by the literal_safe build tag.
const SafeMode = true
