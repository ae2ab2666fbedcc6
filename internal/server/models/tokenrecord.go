package models

// TokenRecord is the per-account ledger of currently valid refresh tokens.
// The slice is ordered: the last element is the most recently issued token,
// rotation replaces an entry in place, and removal filters by exact value.
type TokenRecord struct {
	ID            string
	UserID        int64
	RefreshTokens []string
}
