// Package settings administra la configuración de proveedores externos
// (pagos, envíos, sincronización). Las credenciales se sellan con AES-GCM
// antes de persistir y se devuelven enmascaradas por la API.
package settings

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
	"github.com/kynshop/storefront-api/pkg/crypto"
)

// SettingsUseCase CRUD de configuración de proveedores.
type SettingsUseCase struct {
	repo   repository.SettingsRepository
	sealer *crypto.Sealer
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, sealer *crypto.Sealer) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, sealer: sealer}
}

// Get devuelve la configuración con credenciales enmascaradas.
func (uc *SettingsUseCase) Get(provider string) (*dto.SettingsResponse, error) {
	if !entity.KnownProvider(provider) {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.repo.Get(provider)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return uc.toResponse(s)
}

// List devuelve todos los proveedores configurados, enmascarados.
func (uc *SettingsUseCase) List() ([]dto.SettingsResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SettingsResponse, 0, len(list))
	for _, s := range list {
		r, err := uc.toResponse(s)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return items, nil
}

// Update reemplaza la configuración del proveedor sellando las credenciales.
func (uc *SettingsUseCase) Update(provider, updatedBy string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if !entity.KnownProvider(provider) {
		return nil, domain.ErrInvalidInput
	}
	if in.Credentials == nil {
		in.Credentials = map[string]string{}
	}
	plain, err := json.Marshal(in.Credentials)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	sealed, err := uc.sealer.Seal(plain)
	if err != nil {
		return nil, err
	}
	s := &entity.ProviderSettings{
		Provider:          provider,
		Enabled:           in.Enabled,
		SealedCredentials: sealed,
		UpdatedBy:         updatedBy,
		UpdatedAt:         time.Now(),
	}
	if err := uc.repo.Upsert(s); err != nil {
		return nil, err
	}
	return uc.toResponse(s)
}

// Credentials abre las credenciales en claro para uso interno del servidor
// (nunca expuesto por la API).
func (uc *SettingsUseCase) Credentials(provider string) (map[string]string, error) {
	s, err := uc.repo.Get(provider)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	plain, err := uc.sealer.Open(s.SealedCredentials)
	if err != nil {
		return nil, err
	}
	var creds map[string]string
	if err := json.Unmarshal(plain, &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

func (uc *SettingsUseCase) toResponse(s *entity.ProviderSettings) (*dto.SettingsResponse, error) {
	plain, err := uc.sealer.Open(s.SealedCredentials)
	if err != nil {
		return nil, err
	}
	var creds map[string]string
	if err := json.Unmarshal(plain, &creds); err != nil {
		return nil, err
	}
	masked := make(map[string]string, len(creds))
	for k, v := range creds {
		masked[k] = mask(v)
	}
	return &dto.SettingsResponse{
		Provider:    s.Provider,
		Enabled:     s.Enabled,
		Credentials: masked,
		UpdatedBy:   s.UpdatedBy,
		UpdatedAt:   s.UpdatedAt,
	}, nil
}

// mask oculta el valor dejando visibles los últimos 4 caracteres.
func mask(v string) string {
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", len(v)-4) + v[len(v)-4:]
}
