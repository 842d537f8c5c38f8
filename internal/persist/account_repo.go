package persist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/chrozal/mudcore/internal/model"
)

type AccountRow struct {
	ID             model.AccountID
	Username       string
	CredentialHash string
	NeedsUpgrade   bool
	Email          string
	IsAdmin        bool
	CreatedAt      time.Time
	LastLoginAt    *time.Time
}

func (r AccountRow) toModel() *model.Account {
	return &model.Account{
		ID:             r.ID,
		Username:       r.Username,
		CredentialHash: r.CredentialHash,
		Email:          r.Email,
		IsAdmin:        r.IsAdmin,
	}
}

type AccountRepo struct {
	db *DB
}

func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Load(ctx context.Context, username string) (*AccountRow, error) {
	row := &AccountRow{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, username, credential_hash, needs_upgrade, email, is_admin, created_at, last_login_at
		 FROM accounts WHERE LOWER(username) = LOWER($1)`, username,
	).Scan(
		&row.ID, &row.Username, &row.CredentialHash, &row.NeedsUpgrade,
		&row.Email, &row.IsAdmin, &row.CreatedAt, &row.LastLoginAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *AccountRepo) Create(ctx context.Context, username, rawPassword, email string) (*AccountRow, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	row := &AccountRow{Username: username, CredentialHash: string(hash), Email: email}
	err = r.db.Pool.QueryRow(ctx,
		`INSERT INTO accounts (username, credential_hash, email) VALUES ($1, $2, $3) RETURNING id, created_at`,
		username, row.CredentialHash, email,
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// VerifyCredential is the opaque credential verifier spec.md section 4.1
// names: it reports whether the password matched, and whether the stored
// hash is on a weaker cost factor than bcrypt.DefaultCost and should be
// upgraded. The core only ever sees (matched, needsUpgrade) — never the hash
// itself or the hashing algorithm.
func (r *AccountRepo) VerifyCredential(hash, rawPassword string) (matched, needsUpgrade bool) {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawPassword)) != nil {
		return false, false
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true, false
	}
	return true, cost < bcrypt.DefaultCost
}

// CommissionRehash persists a freshly computed hash at the current cost
// factor, called by the session state machine immediately after a
// needs_upgrade match, before signaling login success (spec.md section 4.1).
func (r *AccountRepo) CommissionRehash(ctx context.Context, id model.AccountID, rawPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx,
		`UPDATE accounts SET credential_hash = $2, needs_upgrade = FALSE WHERE id = $1`,
		id, string(hash),
	)
	return err
}

func (r *AccountRepo) UpdateLastLogin(ctx context.Context, id model.AccountID) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE accounts SET last_login_at = NOW() WHERE id = $1`, id)
	return err
}
