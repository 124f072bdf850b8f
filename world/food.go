package world

// Food is a point resource with a fixed energy payload. It is consumed
// by at most one creature per tick.
type Food struct {
	X, Y   int
	Energy float64
}
