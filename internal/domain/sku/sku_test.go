package sku_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynshop/storefront-api/internal/domain/sku"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia: categoría "kp2", septiembre 2025.
// Primer SKU asignado: KYN-KP2-0925-0001; el segundo: KYN-KP2-0925-0002.
// ──────────────────────────────────────────────────────────────────────────────

var septiembre2025 = time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)

func TestPrefix_EscenarioReferencia(t *testing.T) {
	p, err := sku.Prefix("KYN", "kp2", septiembre2025)
	require.NoError(t, err)
	assert.Equal(t, "KYN-KP2-0925", p, "el prefijo incluye org, código en mayúsculas y MMYY")
}

func TestPrefix_RotacionMensual(t *testing.T) {
	sep, err := sku.Prefix("KYN", "kp2", septiembre2025)
	require.NoError(t, err)
	oct, err := sku.Prefix("KYN", "kp2", septiembre2025.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.NotEqual(t, sep, oct, "al cambiar de mes cambia el prefijo")
	assert.Equal(t, "KYN-KP2-1025", oct)
}

func TestPrefix_EntradasVacias(t *testing.T) {
	_, err := sku.Prefix("", "kp2", septiembre2025)
	assert.Error(t, err, "org vacío debe ser error duro")
	_, err = sku.Prefix("KYN", "", septiembre2025)
	assert.Error(t, err, "código vacío debe ser error duro")
	_, err = sku.Prefix("KYN", "   ", septiembre2025)
	assert.Error(t, err, "código de solo espacios debe ser error duro")
}

func TestCompose_ZeroPadding(t *testing.T) {
	s, err := sku.Compose("KYN-KP2-0925", 1)
	require.NoError(t, err)
	assert.Equal(t, "KYN-KP2-0925-0001", s)

	s, err = sku.Compose("KYN-KP2-0925", 2)
	require.NoError(t, err)
	assert.Equal(t, "KYN-KP2-0925-0002", s)

	s, err = sku.Compose("KYN-KP2-0925", 12345)
	require.NoError(t, err)
	assert.Equal(t, "KYN-KP2-0925-12345", s, "más de 4 dígitos no se trunca")
}

// TestCompose_Determinista mismo prefijo y número producen siempre el mismo SKU.
func TestCompose_Determinista(t *testing.T) {
	a, err := sku.Compose("KYN-KP2-0925", 7)
	require.NoError(t, err)
	b, err := sku.Compose("KYN-KP2-0925", 7)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompose_Invalidos(t *testing.T) {
	_, err := sku.Compose("", 1)
	assert.Error(t, err)
	_, err = sku.Compose("KYN-KP2-0925", 0)
	assert.Error(t, err, "la secuencia arranca en 1")
	_, err = sku.Compose("KYN-KP2-0925", -3)
	assert.Error(t, err)
}

// ── Variantes ─────────────────────────────────────────────────────────────────

func TestVariantSKU_PrimeraVariante(t *testing.T) {
	s, err := sku.VariantSKU("KYN-KP2-0925-0001", 0)
	require.NoError(t, err)
	assert.Equal(t, "KYN-KP2-0925-0001-V1", s, "con 0 variantes previas el sufijo es V1")
}

func TestVariantSKU_SufijoEsConteoMasUno(t *testing.T) {
	for prev, want := range map[int]string{
		1: "KYN-KP2-0925-0001-V2",
		2: "KYN-KP2-0925-0001-V3",
		9: "KYN-KP2-0925-0001-V10",
	} {
		s, err := sku.VariantSKU("KYN-KP2-0925-0001", prev)
		require.NoError(t, err)
		assert.Equal(t, want, s, "con %d variantes previas", prev)
	}
}

func TestVariantSKU_Invalidos(t *testing.T) {
	_, err := sku.VariantSKU("", 0)
	assert.Error(t, err)
	_, err = sku.VariantSKU("KYN-KP2-0925-0001", -1)
	assert.Error(t, err)
}

// ── Tallas ────────────────────────────────────────────────────────────────────

func TestSizeSKU_TallaSimple(t *testing.T) {
	s, err := sku.SizeSKU("KYN-KP2-0925-0001-V1", "M")
	require.NoError(t, err)
	assert.Equal(t, "KYN-KP2-0925-0001-V1-SM", s)
}

func TestSizeSKU_GuionesBajosYMayusculas(t *testing.T) {
	s, err := sku.SizeSKU("KYN-KP2-0925-0001-V1", "one_size")
	require.NoError(t, err)
	assert.Equal(t, "KYN-KP2-0925-0001-V1-SONESIZE", s,
		"one_size debe quedar como SONESIZE: mayúsculas y sin guion bajo")

	s, err = sku.SizeSKU("KYN-KP2-0925-0001-V1", "xl")
	require.NoError(t, err)
	assert.Equal(t, "KYN-KP2-0925-0001-V1-SXL", s)
}

func TestSizeSKU_TallaVacia(t *testing.T) {
	_, err := sku.SizeSKU("KYN-KP2-0925-0001-V1", "")
	assert.Error(t, err, "talla vacía debe ser error duro, no un SKU con sufijo colgante")
	_, err = sku.SizeSKU("KYN-KP2-0925-0001-V1", "___")
	assert.Error(t, err, "talla que queda vacía tras normalizar también es error")
	_, err = sku.SizeSKU("", "M")
	assert.Error(t, err)
}
