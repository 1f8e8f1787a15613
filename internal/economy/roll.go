package economy

import (
	"crypto/rand"
	"io"
	"math/big"
)

var randReader io.Reader = rand.Reader

// Roll returns a cryptographically secure random value in [0,1) for
// battle winner selection. A failing random source panics rather than
// returning a value that would bias the outcome.
func Roll() float64 {
	const precision = 1 << 20
	n, err := rand.Int(randReader, big.NewInt(precision))
	if err != nil {
		panic("economy: random source failed: " + err.Error())
	}
	return float64(n.Int64()) / precision
}
