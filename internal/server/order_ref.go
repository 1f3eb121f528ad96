package server

import (
	"fmt"
	"regexp"
	"strconv"
)

var orderRefPattern = regexp.MustCompile(`^Order-(\d+)-User-(\d+)$`)

// FormatOrderRef builds the merchant order reference embedded in a payment
// link: the order ID plus the buyer's Telegram ID.
func FormatOrderRef(orderID uint, telegramID int64) string {
	return fmt.Sprintf("Order-%d-User-%d", orderID, telegramID)
}

// ParseOrderRef extracts the order ID and Telegram ID from a reference.
func ParseOrderRef(ref string) (uint, int64, error) {
	m := orderRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return 0, 0, fmt.Errorf("malformed order reference %q", ref)
	}

	orderID, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid order id in reference %q: %w", ref, err)
	}
	telegramID, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid user id in reference %q: %w", ref, err)
	}

	return uint(orderID), telegramID, nil
}
