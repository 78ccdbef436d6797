package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// WalletRepo manages user wallet balances.  Debits are guarded at
// the database so concurrent checkouts can never drive a balance
// negative.
type WalletRepo struct {
	db *sql.DB
}

// NewWalletRepo returns a new WalletRepo bound to the given database.
func NewWalletRepo(db *sql.DB) *WalletRepo { return &WalletRepo{db: db} }

// GetByUser returns the wallet for a user.  Users without a wallet
// row are treated as having a zero balance.
func (r *WalletRepo) GetByUser(ctx context.Context, userID uint64) (*model.Wallet, error) {
	const q = `SELECT user_id, balance, updated_at FROM wallets WHERE user_id = ?`
	var w model.Wallet
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return &model.Wallet{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// DebitTx subtracts amount from the user's balance inside the given
// transaction.  The balance check is part of the UPDATE predicate:
// when no row is affected the user either has no wallet or not
// enough funds, and ErrInsufficientFunds is returned without
// modifying anything.
func (r *WalletRepo) DebitTx(ctx context.Context, tx *sql.Tx, userID uint64, amount int64) error {
	const q = `UPDATE wallets SET balance = balance - ? WHERE user_id = ? AND balance >= ?`
	res, err := tx.ExecContext(ctx, q, amount, userID, amount)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// CreditTx adds amount to the user's balance inside the given
// transaction, creating the wallet row if needed.  Used for refunds.
func (r *WalletRepo) CreditTx(ctx context.Context, tx *sql.Tx, userID uint64, amount int64) error {
	const q = `INSERT INTO wallets (user_id, balance) VALUES (?, ?)
	           ON DUPLICATE KEY UPDATE balance = balance + VALUES(balance)`
	_, err := tx.ExecContext(ctx, q, userID, amount)
	return err
}
