package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/inventory"
)

func lot(id string, purchaseDate time.Time, in, out int64, cost string) *entity.StockLot {
	return &entity.StockLot{
		ID:           id,
		VariantID:    "v1",
		QuantityIn:   in,
		QuantityOut:  out,
		UnitCost:     decimal.RequireFromString(cost),
		PurchaseDate: purchaseDate,
	}
}

var (
	enero   = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	febrero = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
)

// Dos lotes: A con 10 unidades a 100 (enero) y B con 5 a 120 (febrero).
// Asignar 12 debe consumir A completo y 2 de B, con COGS = 10*100 + 2*120.
func TestPlanFIFO_ConsumeMasAntiguoPrimero(t *testing.T) {
	lots := []*entity.StockLot{
		lot("lote-b", febrero, 5, 0, "120"),
		lot("lote-a", enero, 10, 0, "100"),
	}

	plan, err := inventory.PlanFIFO(lots, 12)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	assert.Equal(t, "lote-a", plan[0].LotID)
	assert.Equal(t, int64(10), plan[0].Quantity)
	assert.True(t, plan[0].UnitCost.Equal(decimal.RequireFromString("100")))

	assert.Equal(t, "lote-b", plan[1].LotID)
	assert.Equal(t, int64(2), plan[1].Quantity)
	assert.True(t, plan[1].UnitCost.Equal(decimal.RequireFromString("120")))

	assert.True(t, inventory.PlanCOGS(plan).Equal(decimal.RequireFromString("1240")),
		"COGS debe ser 10*100 + 2*120 = 1240")
}

// Misma purchase_date: el desempate es por id ascendente, para que el plan
// sea determinista entre réplicas.
func TestPlanFIFO_DesempataPorID(t *testing.T) {
	lots := []*entity.StockLot{
		lot("lote-02", enero, 5, 0, "90"),
		lot("lote-01", enero, 5, 0, "80"),
	}

	plan, err := inventory.PlanFIFO(lots, 6)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "lote-01", plan[0].LotID)
	assert.Equal(t, int64(5), plan[0].Quantity)
	assert.Equal(t, "lote-02", plan[1].LotID)
	assert.Equal(t, int64(1), plan[1].Quantity)
}

// Los lotes agotados no aportan al plan aunque sean los más antiguos.
func TestPlanFIFO_SaltaLotesAgotados(t *testing.T) {
	lots := []*entity.StockLot{
		lot("lote-a", enero, 10, 10, "100"), // agotado
		lot("lote-b", febrero, 5, 2, "120"), // quedan 3
	}

	plan, err := inventory.PlanFIFO(lots, 3)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "lote-b", plan[0].LotID)
	assert.Equal(t, int64(3), plan[0].Quantity)
}

// Si el remanente total no alcanza, no hay plan parcial: todo-o-nada.
func TestPlanFIFO_StockInsuficiente(t *testing.T) {
	lots := []*entity.StockLot{
		lot("lote-a", enero, 10, 4, "100"), // quedan 6
	}

	plan, err := inventory.PlanFIFO(lots, 7)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, plan, "no debe devolver plan parcial")
}

func TestPlanFIFO_CantidadInvalida(t *testing.T) {
	lots := []*entity.StockLot{lot("lote-a", enero, 10, 0, "100")}

	_, err := inventory.PlanFIFO(lots, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.PlanFIFO(lots, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La planeación es pura: ni muta los lotes ni reordena el slice del caller.
func TestPlanFIFO_NoMutaEntrada(t *testing.T) {
	lots := []*entity.StockLot{
		lot("lote-b", febrero, 5, 0, "120"),
		lot("lote-a", enero, 10, 0, "100"),
	}

	_, err := inventory.PlanFIFO(lots, 12)
	require.NoError(t, err)

	assert.Equal(t, "lote-b", lots[0].ID, "el slice original no debe reordenarse")
	assert.Equal(t, int64(0), lots[0].QuantityOut)
	assert.Equal(t, int64(0), lots[1].QuantityOut)
}

func TestPlanCOGS_PlanVacio(t *testing.T) {
	assert.True(t, inventory.PlanCOGS(nil).IsZero())
}
