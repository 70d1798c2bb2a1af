package noisediode

// DefaultLeadTime is the buffer in seconds added ahead of a trigger
// timestamp so every digitiser in the subarray has received and armed
// the command before it takes effect.
const DefaultLeadTime = 5.0

// ResolveLeadTime normalizes an optional lead time: zero or negative
// means unspecified and falls back to the default.
func ResolveLeadTime(leadTime float64) float64 {
	if leadTime > 0 {
		return leadTime
	}
	return DefaultLeadTime
}
