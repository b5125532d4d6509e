package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/inventory"
)

func TestApplyDelta_Resta(t *testing.T) {
	e, err := inventory.ApplyDelta(10, -3)
	require.NoError(t, err)
	assert.Equal(t, inventory.LedgerEntry{Before: 10, Change: -3, After: 7}, e)
}

func TestApplyDelta_Suma(t *testing.T) {
	e, err := inventory.ApplyDelta(0, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, e.After)
}

func TestApplyDelta_HastaCeroPermitido(t *testing.T) {
	e, err := inventory.ApplyDelta(4, -4)
	require.NoError(t, err)
	assert.Equal(t, 0, e.After)
}

func TestApplyDelta_NegativoRechazado(t *testing.T) {
	_, err := inventory.ApplyDelta(2, -3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyDelta_CeroInvalido(t *testing.T) {
	_, err := inventory.ApplyDelta(5, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrossedThreshold(t *testing.T) {
	assert.True(t, inventory.CrossedThreshold(inventory.LedgerEntry{Before: 10, Change: -6, After: 4}, 5))
	assert.False(t, inventory.CrossedThreshold(inventory.LedgerEntry{Before: 4, Change: -1, After: 3}, 5), "ya estaba bajo")
	assert.False(t, inventory.CrossedThreshold(inventory.LedgerEntry{Before: 10, Change: -5, After: 5}, 5), "igual al mínimo no es bajo")
}
