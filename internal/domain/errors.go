package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrCategoryInUse la categoría tiene productos y su código es inmutable.
	ErrCategoryInUse = errors.New("la categoría tiene productos asociados")
	// ErrTokenInvalid token inexistente, ya usado o con hash incorrecto.
	ErrTokenInvalid = errors.New("token inválido o expirado")
	// ErrTokenExpired token vencido por ExpiresAt.
	ErrTokenExpired = errors.New("token expirado")
	// ErrTokenExhausted se agotaron los intentos de verificación.
	ErrTokenExhausted = errors.New("intentos de verificación agotados")
	// ErrNotLinked la unidad de inventario no tiene referencia externa (href) en MoySklad.
	ErrNotLinked = errors.New("unidad sin referencia en el sistema externo")
)
