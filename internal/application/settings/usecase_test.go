package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/application/settings"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/pkg/crypto"
)

type memSettingsRepo struct {
	byProvider map[string]*entity.ProviderSettings
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{byProvider: map[string]*entity.ProviderSettings{}}
}

func (r *memSettingsRepo) Get(provider string) (*entity.ProviderSettings, error) {
	if s, ok := r.byProvider[provider]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *memSettingsRepo) Upsert(s *entity.ProviderSettings) error {
	cp := *s
	r.byProvider[s.Provider] = &cp
	return nil
}

func (r *memSettingsRepo) List() ([]*entity.ProviderSettings, error) {
	var out []*entity.ProviderSettings
	for _, s := range r.byProvider {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func newUseCase(t *testing.T) (*settings.SettingsUseCase, *memSettingsRepo) {
	t.Helper()
	sealer, err := crypto.NewSealer("test-encryption-key", "test-salt")
	require.NoError(t, err)
	repo := newMemSettingsRepo()
	return settings.NewSettingsUseCase(repo, sealer), repo
}

func TestUpdate_SellaCredencialesEnReposo(t *testing.T) {
	uc, repo := newUseCase(t)

	out, err := uc.Update(entity.ProviderPayment, "admin-1", dto.UpdateSettingsRequest{
		Enabled:     true,
		Credentials: map[string]string{"api_key": "sk_live_abcdef123456"},
	})
	require.NoError(t, err)
	assert.True(t, out.Enabled)

	stored := repo.byProvider[entity.ProviderPayment]
	require.NotNil(t, stored)
	assert.NotContains(t, stored.SealedCredentials, "sk_live",
		"el valor en claro nunca toca el almacenamiento")
	assert.Equal(t, "admin-1", stored.UpdatedBy)
}

func TestGet_EnmascaraCredenciales(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Update(entity.ProviderPayment, "admin-1", dto.UpdateSettingsRequest{
		Enabled:     true,
		Credentials: map[string]string{"api_key": "sk_live_abcdef123456"},
	})
	require.NoError(t, err)

	out, err := uc.Get(entity.ProviderPayment)
	require.NoError(t, err)
	require.NotNil(t, out)

	masked := out.Credentials["api_key"]
	assert.Equal(t, "3456", masked[len(masked)-4:], "quedan visibles los últimos 4 caracteres")
	assert.NotContains(t, masked, "sk_live")
	assert.Contains(t, masked, "****")
}

func TestGet_ValorCortoTotalmenteOculto(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Update(entity.ProviderShipping, "admin-1", dto.UpdateSettingsRequest{
		Credentials: map[string]string{"pin": "1234"},
	})
	require.NoError(t, err)

	out, err := uc.Get(entity.ProviderShipping)
	require.NoError(t, err)
	assert.Equal(t, "****", out.Credentials["pin"],
		"un valor de 4 caracteres o menos se oculta completo")
}

func TestGet_ProveedorDesconocido(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Get("crm")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_NoConfiguradoDevuelveNil(t *testing.T) {
	uc, _ := newUseCase(t)
	out, err := uc.Get(entity.ProviderSync)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUpdate_ProveedorDesconocido(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Update("crm", "admin-1", dto.UpdateSettingsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCredentials_DevuelveElPlanoParaUsoInterno(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Update(entity.ProviderSync, "admin-1", dto.UpdateSettingsRequest{
		Enabled:     true,
		Credentials: map[string]string{"token": "ms-token-xyz", "org": "kyn"},
	})
	require.NoError(t, err)

	creds, err := uc.Credentials(entity.ProviderSync)
	require.NoError(t, err)
	assert.Equal(t, "ms-token-xyz", creds["token"])
	assert.Equal(t, "kyn", creds["org"])
}

func TestCredentials_NoConfigurado(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Credentials(entity.ProviderPayment)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_DevuelveTodosEnmascarados(t *testing.T) {
	uc, _ := newUseCase(t)

	for _, p := range []string{entity.ProviderPayment, entity.ProviderShipping} {
		_, err := uc.Update(p, "admin-1", dto.UpdateSettingsRequest{
			Credentials: map[string]string{"secret": "super-secreto-999"},
		})
		require.NoError(t, err)
	}

	items, err := uc.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.NotContains(t, it.Credentials["secret"], "super",
			"el listado tampoco expone credenciales en claro")
	}
}
