package inventory

import (
	"github.com/jhoicas/zola-inventory-api/internal/domain"
)

// LedgerEntry resultado de aplicar un movimiento sobre el stock actual.
type LedgerEntry struct {
	Before int
	Change int
	After  int
}

// ApplyDelta calcula el asiento del libro de stock (servicio de dominio).
// After = Before + Change. Un cambio en cero es inválido; un resultado negativo
// se rechaza con ErrInsufficientStock (no hay stock negativo ni recorte a cero).
func ApplyDelta(before, change int) (LedgerEntry, error) {
	if change == 0 {
		return LedgerEntry{}, domain.ErrInvalidInput
	}
	after := before + change
	if after < 0 {
		return LedgerEntry{}, domain.ErrInsufficientStock
	}
	return LedgerEntry{Before: before, Change: change, After: after}, nil
}

// CrossedThreshold indica si el movimiento dejó el producto por debajo del mínimo
// partiendo de un stock que no lo estaba.
func CrossedThreshold(e LedgerEntry, threshold int) bool {
	return e.Before >= threshold && e.After < threshold
}
