package scoring

// AttentionThreshold is the default cut-off below which a score "needs attention".
// A single global constant applied identically to overall scores, per-section
// scores and cohort-wide below-threshold counts.
const AttentionThreshold = 60.0

// NeedsAttention reports whether a percentage falls below the threshold.
// The boundary is exclusive: exactly the threshold does not flag.
func NeedsAttention(percentage, threshold float64) bool {
	return percentage < threshold
}
