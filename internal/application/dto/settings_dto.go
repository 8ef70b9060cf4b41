package dto

import "time"

// UpdateSettingsRequest reemplaza la configuración de un proveedor.
// Credentials es un objeto JSON arbitrario; se sella antes de persistir.
type UpdateSettingsRequest struct {
	Enabled     bool              `json:"enabled"`
	Credentials map[string]string `json:"credentials"`
}

// SettingsResponse configuración con credenciales enmascaradas: se devuelven
// las claves presentes con los valores ocultos salvo los últimos 4 caracteres.
type SettingsResponse struct {
	Provider    string            `json:"provider"`
	Enabled     bool              `json:"enabled"`
	Credentials map[string]string `json:"credentials"`
	UpdatedBy   string            `json:"updated_by,omitempty"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
