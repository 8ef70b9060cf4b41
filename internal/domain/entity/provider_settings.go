package entity

import "time"

// Proveedores configurables desde el panel de administración.
const (
	ProviderPayment  = "payment"
	ProviderShipping = "shipping"
	ProviderSync     = "sync"
)

// KnownProvider valida el discriminador de proveedor.
func KnownProvider(p string) bool {
	switch p {
	case ProviderPayment, ProviderShipping, ProviderSync:
		return true
	}
	return false
}

// ProviderSettings configuración de un proveedor externo.
// SealedCredentials es el JSON de credenciales cifrado con AES-GCM;
// el plano nunca se persiste ni se devuelve completo por la API.
type ProviderSettings struct {
	Provider          string
	Enabled           bool
	SealedCredentials string
	UpdatedBy         string
	UpdatedAt         time.Time
}
