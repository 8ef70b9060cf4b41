package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo implementación del puerto TokenRepository sobre PostgreSQL.
type TokenRepo struct {
	q Querier
}

// NewTokenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTokenRepository(q Querier) *TokenRepo {
	return &TokenRepo{q: q}
}

// Create persiste un token de verificación recién emitido (solo hashes).
func (r *TokenRepo) Create(token *entity.VerificationToken) error {
	query := `
		INSERT INTO verification_tokens (id, user_id, purpose, destination, token_hash, code_hash, attempts, max_attempts, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		token.ID, token.UserID, token.Purpose, token.Destination, token.TokenHash, token.CodeHash,
		token.Attempts, token.MaxAttempts, token.ExpiresAt, token.UsedAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// FindByTokenHash busca un token no consumido por propósito y hash.
func (r *TokenRepo) FindByTokenHash(purpose, tokenHash string) (*entity.VerificationToken, error) {
	query := `
		SELECT id, user_id, purpose, destination, token_hash, code_hash, attempts, max_attempts, expires_at, used_at, created_at
		FROM verification_tokens
		WHERE purpose = $1 AND token_hash = $2 AND used_at IS NULL`
	return r.getOne(query, purpose, tokenHash)
}

// FindLatestByDestination busca el token activo más reciente para un destino.
func (r *TokenRepo) FindLatestByDestination(purpose, destination string) (*entity.VerificationToken, error) {
	query := `
		SELECT id, user_id, purpose, destination, token_hash, code_hash, attempts, max_attempts, expires_at, used_at, created_at
		FROM verification_tokens
		WHERE purpose = $1 AND destination = $2 AND used_at IS NULL
		ORDER BY created_at DESC LIMIT 1`
	return r.getOne(query, purpose, destination)
}

func (r *TokenRepo) getOne(query string, args ...any) (*entity.VerificationToken, error) {
	var t entity.VerificationToken
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&t.ID, &t.UserID, &t.Purpose, &t.Destination, &t.TokenHash, &t.CodeHash,
		&t.Attempts, &t.MaxAttempts, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get token: %w", err)
	}
	return &t, nil
}

// IncrementAttempts cuenta un intento fallido de verificación de código.
func (r *TokenRepo) IncrementAttempts(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE verification_tokens SET attempts = attempts + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment attempts: %w", err)
	}
	return nil
}

// BindUser asocia un usuario a un token emitido sin usuario.
func (r *TokenRepo) BindUser(id, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE verification_tokens SET user_id = $2 WHERE id = $1`, id, userID)
	if err != nil {
		return fmt.Errorf("bind token user: %w", err)
	}
	return nil
}

// Consume marca el token como usado. El predicado used_at IS NULL hace que
// solo un consumidor gane incluso bajo concurrencia; el perdedor recibe
// domain.ErrTokenInvalid.
func (r *TokenRepo) Consume(id string, at time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE verification_tokens SET used_at = $2 WHERE id = $1 AND used_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("consume token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTokenInvalid
	}
	return nil
}

// Delete elimina un token por ID.
func (r *TokenRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM verification_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// DeleteExpired elimina los tokens vencidos antes de before.
func (r *TokenRepo) DeleteExpired(before time.Time) (int, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM verification_tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}
