// Package sku contiene la composición pura de identificadores de producto.
//
// Formato: <ORG>-<CATCODE>-<MMYY>-<NNNN> para productos,
// sufijo -V<N> para variantes y -S<TALLA> para tallas.
// Toda entrada vacía es un error duro: un SKU malformado (guiones colgantes,
// sufijos vacíos) nunca debe llegar a persistirse.
package sku

import (
	"fmt"
	"strings"
	"time"
)

// Prefix construye el espacio de nombres del contador: <ORG>-<CODE>-<MMYY>.
// El código de categoría se normaliza a mayúsculas. La rotación mensual es
// implícita: al cambiar el mes cambia el prefijo y el contador arranca de nuevo.
func Prefix(org, categoryCode string, t time.Time) (string, error) {
	org = strings.TrimSpace(org)
	code := strings.TrimSpace(categoryCode)
	if org == "" {
		return "", fmt.Errorf("sku: prefijo de organización vacío")
	}
	if code == "" {
		return "", fmt.Errorf("sku: código de categoría vacío")
	}
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(org), strings.ToUpper(code), t.Format("0106")), nil
}

// Compose arma el SKU final de producto: <prefix>-<NNNN> con n en 4 dígitos.
func Compose(prefix string, n int) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		return "", fmt.Errorf("sku: prefijo vacío")
	}
	if n < 1 {
		return "", fmt.Errorf("sku: número de secuencia inválido: %d", n)
	}
	return fmt.Sprintf("%s-%04d", prefix, n), nil
}

// VariantSKU deriva el SKU de una variante: <parentSKU>-V<N>,
// donde N es 1 + variantes existentes del producto.
func VariantSKU(parentSKU string, existingVariants int) (string, error) {
	if strings.TrimSpace(parentSKU) == "" {
		return "", fmt.Errorf("sku: SKU del producto padre vacío")
	}
	if existingVariants < 0 {
		return "", fmt.Errorf("sku: conteo de variantes negativo: %d", existingVariants)
	}
	return fmt.Sprintf("%s-V%d", parentSKU, existingVariants+1), nil
}

// SizeSKU deriva el SKU de una talla: <variantSKU>-S<TALLA>,
// con la talla en mayúsculas y los guiones bajos eliminados
// (ej. "one_size" -> "SONESIZE", "m" -> "SM").
func SizeSKU(variantSKU, size string) (string, error) {
	if strings.TrimSpace(variantSKU) == "" {
		return "", fmt.Errorf("sku: SKU de la variante vacío")
	}
	token := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(size), "_", ""))
	if token == "" {
		return "", fmt.Errorf("sku: talla vacía")
	}
	return fmt.Sprintf("%s-S%s", variantSKU, token), nil
}
