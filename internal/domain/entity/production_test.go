package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
)

func draftLot() *entity.ProductionLot {
	return &entity.ProductionLot{
		ID:       "prod-1",
		StoreID:  "store-1",
		RecipeID: "rec-1",
		Quantity: decimal.NewFromInt(20),
		Unit:     entity.UnitPiece,
		Status:   entity.ProductionLotStatusDraft,
	}
}

// La transición DRAFT -> EXECUTED fija el estado y la fecha de producción.
func TestMarkExecuted_TransicionUnica(t *testing.T) {
	lot := draftLot()
	at := time.Date(2026, time.March, 2, 14, 0, 0, 0, time.UTC)

	require.NoError(t, lot.MarkExecuted(at))
	assert.Equal(t, entity.ProductionLotStatusExecuted, lot.Status)
	require.NotNil(t, lot.ProducedAt)
	assert.True(t, lot.ProducedAt.Equal(at))
}

// EXECUTED es terminal: la re-ejecución devuelve el error tipado y no toca nada.
func TestMarkExecuted_ReEjecucionRechazada(t *testing.T) {
	lot := draftLot()
	first := time.Date(2026, time.March, 2, 14, 0, 0, 0, time.UTC)
	require.NoError(t, lot.MarkExecuted(first))

	err := lot.MarkExecuted(first.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrProductionAlreadyExecuted)
	assert.True(t, lot.ProducedAt.Equal(first), "la fecha de la primera ejecución no cambia")
}

// Un estado desconocido no es ejecutable (dato corrupto o versión futura).
func TestMarkExecuted_EstadoDesconocido(t *testing.T) {
	lot := draftLot()
	lot.Status = "CANCELLED"

	err := lot.MarkExecuted(time.Now())
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, lot.ProducedAt)
}
