package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	GetCoinsForUpdate(ctx context.Context, tx *sql.Tx, id string) (int, error)
	DebitCoins(ctx context.Context, tx *sql.Tx, id string, amount int) error
	CreditCoins(ctx context.Context, tx *sql.Tx, id string, amount int) error
	GetStats(ctx context.Context, id string) (*model.UserStats, error)
	Count(ctx context.Context) (int, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, hashed_password, coins)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.HashedPassword, user.Coins)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, hashed_password, coins, created_at, updated_at
	          FROM users WHERE email = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.Coins, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, name, email, hashed_password, coins, created_at, updated_at
	          FROM users WHERE id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.Coins, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

// GetCoinsForUpdate locks the user row for the duration of the surrounding
// transaction so the entry fee debit cannot race another submission.
func (r *pgUserRepository) GetCoinsForUpdate(ctx context.Context, tx *sql.Tx, id string) (int, error) {
	var coins int
	err := tx.QueryRowContext(ctx, `SELECT coins FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&coins)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("pgUserRepository.GetCoinsForUpdate: %w", err)
	}
	return coins, nil
}

func (r *pgUserRepository) DebitCoins(ctx context.Context, tx *sql.Tx, id string, amount int) error {
	query := `UPDATE users SET coins = coins - $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query, amount, id); err != nil {
		return fmt.Errorf("pgUserRepository.DebitCoins: %w", err)
	}
	return nil
}

func (r *pgUserRepository) CreditCoins(ctx context.Context, tx *sql.Tx, id string, amount int) error {
	query := `UPDATE users SET coins = coins + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query, amount, id); err != nil {
		return fmt.Errorf("pgUserRepository.CreditCoins: %w", err)
	}
	return nil
}

func (r *pgUserRepository) GetStats(ctx context.Context, id string) (*model.UserStats, error) {
	query := `
        SELECT u.id, u.name, u.coins,
               (SELECT COUNT(*) FROM photos p WHERE p.user_id = u.id) AS total_photos,
               (SELECT COUNT(*) FROM submissions s
                  JOIN photos p ON s.photo_id = p.id
                 WHERE p.user_id = u.id) AS total_submissions,
               (SELECT COUNT(*) FROM submissions s
                  JOIN photos p ON s.photo_id = p.id
                 WHERE p.user_id = u.id AND s.status = 'Approved') AS approved_count,
               (SELECT COUNT(*) FROM votes v
                  JOIN photos p ON v.photo_id = p.id
                 WHERE p.user_id = u.id) AS votes_received,
               (SELECT COUNT(*) FROM contests c
                 WHERE c.winner_user_id = u.id) AS contests_won
        FROM users u
        WHERE u.id = $1`
	stats := &model.UserStats{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&stats.UserID, &stats.Name, &stats.Coins,
		&stats.TotalPhotos, &stats.TotalSubmissions, &stats.ApprovedCount, &stats.VotesReceived,
		&stats.ContestsWon,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.GetStats: %w", err)
	}
	return stats, nil
}

func (r *pgUserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgUserRepository.Count: %w", err)
	}
	return n, nil
}
