package quest

import "math/rand/v2"

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewSecret returns n random uppercase base36 characters.
func NewSecret(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.IntN(len(base36))]
	}
	return string(b)
}
