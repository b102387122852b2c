package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, phone, password_hash, role, business_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Phone, user.PasswordHash, user.Role, user.BusinessName, time.Now(),
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''), password_hash, role, COALESCE(business_name, ''), created_at
		FROM users WHERE id = $1
	`
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.Role, &user.BusinessName, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''), password_hash, role, COALESCE(business_name, ''), created_at
		FROM users WHERE LOWER(email) = LOWER($1)
	`
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.Role, &user.BusinessName, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET name = $1, phone = $2, business_name = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, user.Name, user.Phone, user.BusinessName, user.ID)
	return err
}

func (r *userRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *userRepository) ListPushTokens(ctx context.Context, userID int32) ([]string, error) {
	query := `SELECT token FROM user_push_tokens WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *userRepository) AddPushToken(ctx context.Context, userID int32, token string) error {
	query := `
		INSERT INTO user_push_tokens (user_id, token, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, token) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, token, time.Now())
	return err
}

func (r *userRepository) RemovePushTokens(ctx context.Context, userID int32, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	query := `DELETE FROM user_push_tokens WHERE user_id = $1 AND token = ANY($2)`
	_, err := r.db.ExecContext(ctx, query, userID, pq.Array(tokens))
	return err
}
