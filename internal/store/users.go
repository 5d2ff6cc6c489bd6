package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

const userCols = `id, username, password_hash, role, created_at, deleted_at`

func scanUser(s rowScanner) (*model.User, error) {
	u := &model.User{}
	var deletedAt sql.NullTime
	if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		u.DeletedAt = &t
	}
	return u, nil
}

// CreateUser creates an operator account. Duplicate active usernames are a
// Conflict.
func CreateUser(ctx context.Context, db *sql.DB, username, passwordHash, role string) (*model.User, error) {
	if role != model.RoleAdmin && role != model.RoleOperator {
		return nil, model.NewValidationError(fmt.Sprintf("unknown role %q", role), "role")
	}

	existing, err := GetUserByUsername(ctx, db, username)
	if err != nil {
		return nil, classify("create user", 0, err)
	}
	if existing != nil && existing.DeletedAt == nil {
		return nil, model.Conflict("create user", existing.ID, "exists")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		username, passwordHash, role,
	)
	if err != nil {
		return nil, classify("create user", 0, fmt.Errorf("creating user: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID, or nil if absent.
func GetUser(ctx context.Context, q Querier, id int64) (*model.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByUsername returns the newest account with username, soft-deleted
// accounts included so auth can reject them explicitly.
func GetUserByUsername(ctx context.Context, q Querier, username string) (*model.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE username = ? ORDER BY id DESC LIMIT 1`, username,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	return u, nil
}

// ListUsers returns all active operator accounts.
func ListUsers(ctx context.Context, q Querier) ([]model.User, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+userCols+` FROM users WHERE deleted_at IS NULL ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// CountAdmins returns the number of active admin accounts.
func CountAdmins(ctx context.Context, q Querier) (int, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ? AND deleted_at IS NULL`, model.RoleAdmin,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting admins: %w", err)
	}
	return n, nil
}

// UpdateUserPassword replaces an active user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return classify("update password", id, fmt.Errorf("updating user password: %w", err))
	}
	return requireOneRow(result, "update password", id)
}

// DeleteUser soft-deletes a user. The last active admin cannot be removed.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	const op = "delete user"

	err := withTx(ctx, db, func(tx *sql.Tx) error {
		u, err := GetUser(ctx, tx, id)
		if err != nil {
			return err
		}
		if u == nil || u.DeletedAt != nil {
			return model.NotFound(op, id)
		}
		if u.Role == model.RoleAdmin {
			n, err := CountAdmins(ctx, tx)
			if err != nil {
				return err
			}
			if n <= 1 {
				return model.Conflict(op, id, "last admin")
			}
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id,
		)
		if err != nil {
			return fmt.Errorf("deleting user: %w", err)
		}
		return requireOneRow(result, op, id)
	})
	return classify(op, id, err)
}
