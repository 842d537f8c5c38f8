package persist

import (
	"context"

	"github.com/chrozal/mudcore/internal/model"
)

// BankRepo persists the per-character talon balance and banked item ids.
// Each method runs a single statement on the pool; no method opens a
// transaction, and the bank handler does not group its calls into one.
type BankRepo struct {
	db *DB
}

func NewBankRepo(db *DB) *BankRepo {
	return &BankRepo{db: db}
}

func (r *BankRepo) LoadTalon(ctx context.Context, charID model.CharacterID) (int64, error) {
	var talon int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT talon FROM bank_accounts WHERE character_id = $1`, charID,
	).Scan(&talon)
	if err != nil {
		return 0, nil // no bank account row yet; treat as empty
	}
	return talon, nil
}

// Deposit adds to a character's banked talon, creating the account row if
// this is its first deposit.
func (r *BankRepo) Deposit(ctx context.Context, charID model.CharacterID, amount int64) (int64, error) {
	var talon int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO bank_accounts (character_id, talon) VALUES ($1, $2)
		 ON CONFLICT (character_id) DO UPDATE SET talon = bank_accounts.talon + EXCLUDED.talon
		 RETURNING talon`,
		charID, amount,
	).Scan(&talon)
	return talon, err
}

// Withdraw decrements a character's banked talon. Returns the remaining
// balance; the caller is responsible for having checked sufficiency first.
func (r *BankRepo) Withdraw(ctx context.Context, charID model.CharacterID, amount int64) (int64, error) {
	var talon int64
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE bank_accounts SET talon = talon - $1 WHERE character_id = $2 RETURNING talon`,
		amount, charID,
	).Scan(&talon)
	return talon, err
}

func (r *BankRepo) DepositItem(ctx context.Context, charID model.CharacterID, itemID model.ItemInstanceID) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO banked_items (character_id, item_instance_id) VALUES ($1, $2)`,
		charID, int64(itemID),
	)
	return err
}

func (r *BankRepo) WithdrawItem(ctx context.Context, charID model.CharacterID, itemID model.ItemInstanceID) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM banked_items WHERE character_id = $1 AND item_instance_id = $2`,
		charID, int64(itemID),
	)
	return err
}

func (r *BankRepo) LoadItems(ctx context.Context, charID model.CharacterID) ([]model.ItemInstanceID, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT item_instance_id FROM banked_items WHERE character_id = $1`, charID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ItemInstanceID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, model.ItemInstanceID(id))
	}
	return result, rows.Err()
}
