package entity

import "time"

// SkuSequence contador por prefijo (<ORG>-<CATCODE>-<MMYY>).
// LastNumber es monótono no-decreciente y nunca se reutiliza, aunque el
// producto dueño del número se borre después. La rotación mensual es
// implícita en el prefijo; no hay reset explícito.
type SkuSequence struct {
	Prefix     string
	LastNumber int
	UpdatedAt  time.Time
}
