package persist

import (
	"context"
	"time"

	"github.com/chrozal/mudcore/internal/model"
)

// BoardPost is one bulletin-board message (spec.md's supplemented bulletin
// board feature). Posts are not cached in memory; the board handler queries
// them from the database on each command.
type BoardPost struct {
	ID         int64
	BoardName  string
	AuthorID   model.CharacterID
	AuthorName string
	Subject    string
	Body       string
	PostedAt   time.Time
}

type BoardRepo struct {
	db *DB
}

func NewBoardRepo(db *DB) *BoardRepo {
	return &BoardRepo{db: db}
}

// LoadBoard returns the most recent posts for a board, newest first.
func (r *BoardRepo) LoadBoard(ctx context.Context, boardName string, limit int) ([]BoardPost, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT bp.id, bp.board_name, bp.author_id, c.first_name, bp.subject, bp.body, bp.posted_at
		 FROM board_posts bp JOIN characters c ON c.id = bp.author_id
		 WHERE bp.board_name = $1 ORDER BY bp.posted_at DESC LIMIT $2`, boardName, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []BoardPost
	for rows.Next() {
		var p BoardPost
		if err := rows.Scan(&p.ID, &p.BoardName, &p.AuthorID, &p.AuthorName, &p.Subject, &p.Body, &p.PostedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *BoardRepo) Post(ctx context.Context, boardName string, authorID model.CharacterID, subject, body string) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO board_posts (board_name, author_id, subject, body) VALUES ($1, $2, $3, $4) RETURNING id`,
		boardName, authorID, subject, body,
	).Scan(&id)
	return id, err
}

func (r *BoardRepo) Remove(ctx context.Context, postID int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM board_posts WHERE id = $1`, postID)
	return err
}
