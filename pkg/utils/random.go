package utils

import (
	"crypto/rand"
	"math/big"
)

const promoCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePromoCode generates a random uppercase alphanumeric code of length n.
func GeneratePromoCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(promoCharset))))
		if err != nil {
			return ""
		}
		b[i] = promoCharset[num.Int64()]
	}
	return string(b)
}
