package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a balance-bearing record tied to a registered user. The user
// reference is not transactionally enforced here.
type Wallet struct {
	ID        string
	UserID    string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// View is the caller-facing projection of a Wallet.
type View struct {
	ID      string          `json:"id"`
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}
