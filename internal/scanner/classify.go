package scanner

// LengthTolerance is the byte distance from the baseline length below which
// a same-status outcome is treated as a wildcard response.
const LengthTolerance = 10

// Classify flags o as a false positive when it has the baseline's status
// code and a body length within LengthTolerance bytes of it. A nil
// baseline leaves o untouched.
func Classify(o Outcome, b *Baseline) Outcome {
	if b == nil {
		return o
	}
	o.FalsePositive = o.StatusCode == b.StatusCode &&
		abs64(o.ContentLength-b.ContentLength) < LengthTolerance
	return o
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
