package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
)

func (r *accountsRepo) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET last_active = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("touch last active: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrAccountNotFound
	}

	return nil
}

// ListActiveSince returns accounts with last_active >= since.
// A zero since returns every account.
func (r *accountsRepo) ListActiveSince(ctx context.Context, since time.Time) ([]accounts.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, password_hash, balance, last_active
		FROM users
		WHERE $1::timestamptz IS NULL OR last_active >= $1
		ORDER BY username
	`, nullableTime(since))
	if err != nil {
		return nil, fmt.Errorf("list active accounts: %w", err)
	}
	defer rows.Close()

	var out []accounts.Account

	for rows.Next() {
		var acc accounts.Account

		err = rows.Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.Balance, &acc.LastActive)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}

		out = append(out, acc)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return out, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
