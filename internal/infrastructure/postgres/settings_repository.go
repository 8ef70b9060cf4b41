package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsRepository sobre PostgreSQL.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get obtiene la configuración de un proveedor; nil si no existe.
func (r *SettingsRepo) Get(provider string) (*entity.ProviderSettings, error) {
	query := `
		SELECT provider, enabled, sealed_credentials, updated_by, updated_at
		FROM provider_settings WHERE provider = $1`
	var s entity.ProviderSettings
	err := r.q.QueryRow(context.Background(), query, provider).Scan(
		&s.Provider, &s.Enabled, &s.SealedCredentials, &s.UpdatedBy, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert crea o reemplaza la configuración del proveedor.
func (r *SettingsRepo) Upsert(settings *entity.ProviderSettings) error {
	query := `
		INSERT INTO provider_settings (provider, enabled, sealed_credentials, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider) DO UPDATE
		SET enabled = EXCLUDED.enabled,
		    sealed_credentials = EXCLUDED.sealed_credentials,
		    updated_by = EXCLUDED.updated_by,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		settings.Provider, settings.Enabled, settings.SealedCredentials, settings.UpdatedBy, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

// List devuelve la configuración de todos los proveedores.
func (r *SettingsRepo) List() ([]*entity.ProviderSettings, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT provider, enabled, sealed_credentials, updated_by, updated_at FROM provider_settings ORDER BY provider`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProviderSettings
	for rows.Next() {
		var s entity.ProviderSettings
		if err := rows.Scan(&s.Provider, &s.Enabled, &s.SealedCredentials, &s.UpdatedBy, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan settings: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
