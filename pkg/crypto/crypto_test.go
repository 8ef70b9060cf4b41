package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynshop/storefront-api/pkg/crypto"
)

const (
	testKey  = "clave-de-prueba-no-usar-en-prod"
	testSalt = "salt-de-prueba"
)

// TestSealer_RoundTrip verifica que Open(Seal(x)) == x.
func TestSealer_RoundTrip(t *testing.T) {
	s, err := crypto.NewSealer(testKey, testSalt)
	require.NoError(t, err)

	plaintext := []byte(`{"merchant_id":"m-123","secret_key":"sk_live_abc"}`)
	sealed, err := s.Seal(plaintext)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "sk_live_abc", "el blob sellado no debe exponer el secreto")

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

// TestSealer_NoncesDistintos verifica que sellar dos veces el mismo plaintext
// produce blobs distintos (nonce aleatorio por operación).
func TestSealer_NoncesDistintos(t *testing.T) {
	s, err := crypto.NewSealer(testKey, testSalt)
	require.NoError(t, err)

	a, err := s.Seal([]byte("mismo contenido"))
	require.NoError(t, err)
	b, err := s.Seal([]byte("mismo contenido"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

// TestSealer_ClaveDistintaNoAbre verifica que un Sealer con otra clave no puede abrir el blob.
func TestSealer_ClaveDistintaNoAbre(t *testing.T) {
	s1, err := crypto.NewSealer(testKey, testSalt)
	require.NoError(t, err)
	s2, err := crypto.NewSealer("otra-clave", testSalt)
	require.NoError(t, err)

	sealed, err := s1.Seal([]byte("secreto"))
	require.NoError(t, err)

	_, err = s2.Open(sealed)
	assert.Error(t, err, "abrir con clave distinta debe fallar")
}

func TestSealer_BlobCorrupto(t *testing.T) {
	s, err := crypto.NewSealer(testKey, testSalt)
	require.NoError(t, err)

	_, err = s.Open("no-es-base64!!!")
	assert.Error(t, err)

	_, err = s.Open("YWJj") // base64 válido pero más corto que el nonce
	assert.Error(t, err)
}

func TestNewSealer_RequiereKeyYSalt(t *testing.T) {
	_, err := crypto.NewSealer("", testSalt)
	assert.Error(t, err)
	_, err = crypto.NewSealer(testKey, "")
	assert.Error(t, err)
}
