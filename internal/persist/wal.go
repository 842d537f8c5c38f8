package persist

import (
	"context"
	"fmt"

	"github.com/chrozal/mudcore/internal/model"
)

// WALEntry is one economic write-ahead-log row: a trade, shop purchase/sale,
// or bank deposit/withdrawal. No handler in this module constructs a
// WALRepo or writes WAL entries; the shop and bank handlers change
// in-memory state without a WAL record.
type WALEntry struct {
	TxType         string // "trade", "shop_buy", "shop_sell", "bank_deposit", "bank_withdraw"
	FromChar       model.CharacterID
	ToChar         model.CharacterID
	ItemTemplateID int32
	Count          int32
	GoldAmount     int64
}

type WALRepo struct {
	db *DB
}

func NewWALRepo(db *DB) *WALRepo {
	return &WALRepo{db: db}
}

// WriteWAL atomically writes a batch of WAL entries in a single transaction.
// The caller makes the in-memory mutation only after this commits.
func (r *WALRepo) WriteWAL(ctx context.Context, entries []WALEntry) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("wal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO economic_wal (tx_type, from_char, to_char, item_template_id, count, gold_amount)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			e.TxType, e.FromChar, e.ToChar, e.ItemTemplateID, e.Count, e.GoldAmount,
		); err != nil {
			return fmt.Errorf("wal insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// MarkProcessed marks all outstanding WAL entries processed. Nothing in this
// module calls it; the batch persist pass does not read the WAL.
func (r *WALRepo) MarkProcessed(ctx context.Context) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE economic_wal SET processed = TRUE WHERE processed = FALSE`)
	return err
}
