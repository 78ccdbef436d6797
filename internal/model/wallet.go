package model

import "time"

// Wallet holds a user's internal balance in whole currency units.
// A wallet debit is the internal alternative to an online payment:
// the balance is reduced and the booking confirmed in one database
// transaction, so there is no pending state on this path.
//
// Fields:
//  UserID    – owner of the wallet (primary key).
//  Balance   – current balance, never negative.
//  UpdatedAt – last update timestamp.
type Wallet struct {
	UserID    uint64    // wallets.user_id
	Balance   int64     // wallets.balance
	UpdatedAt time.Time // wallets.updated_at
}
