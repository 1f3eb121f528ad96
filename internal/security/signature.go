package security

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// PaymentSignature computes the Free-Kassa notification signature:
// md5(merchant_id:amount:secret:order_id), lowercase hex. The amount string
// is used exactly as received, the gateway signs its own formatting.
func PaymentSignature(merchantID, amount, secret, orderRef string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%s:%s:%s", merchantID, amount, secret, orderRef)))
	return hex.EncodeToString(sum[:])
}

// VerifyPaymentSignature checks the gateway-provided signature in constant
// time, case-insensitively.
func VerifyPaymentSignature(merchantID, amount, secret, orderRef, provided string) bool {
	expected := PaymentSignature(merchantID, amount, secret, orderRef)
	provided = strings.ToLower(strings.TrimSpace(provided))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
