package repository

import "github.com/kynshop/storefront-api/internal/domain/entity"

// SettingsRepository define el puerto de persistencia para ProviderSettings.
type SettingsRepository interface {
	Get(provider string) (*entity.ProviderSettings, error)
	Upsert(settings *entity.ProviderSettings) error
	List() ([]*entity.ProviderSettings, error)
}
