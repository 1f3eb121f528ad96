package handlers

// UserSession tracks a user's position in a multi-step conversation. Data
// carries the values collected so far, keyed by field name.
type UserSession struct {
	State string
	Data  map[string]string
}

func NewSession() *UserSession {
	return &UserSession{Data: make(map[string]string)}
}

func (s *UserSession) Set(key, value string) {
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

func (s *UserSession) Get(key string) string {
	return s.Data[key]
}

func (s *UserSession) Clear() {
	s.State = StateNone
	s.Data = make(map[string]string)
}

// Session states
const (
	StateNone = ""

	// Purchase flow
	StateAwaitingPromo = "awaiting_promo"

	// Withdrawal flow
	StateWithdrawAmount     = "withdraw_amount"
	StateWithdrawNickname   = "withdraw_nickname"
	StateWithdrawSkinName   = "withdraw_skin_name"
	StateWithdrawSkinPrice  = "withdraw_skin_price"
	StateWithdrawScreenshot = "withdraw_screenshot"

	// Review flow
	StateReviewText = "review_text"
)

// Session data keys
const (
	KeyProductType   = "product_type"
	KeyProductID     = "product_id"
	KeyPaymentMethod = "payment_method"
	KeyAmount        = "amount"
	KeyNickname      = "nickname"
	KeySkinName      = "skin_name"
	KeySkinPrice     = "skin_price"
	KeyRating        = "rating"
)
