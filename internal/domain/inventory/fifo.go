// Package inventory contiene los servicios de dominio del motor de lotes:
// planeación FIFO pura (sin I/O) y cálculo de COGS.
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
)

// LotConsumption es un paso del plan FIFO: cuánto consumir de qué lote y a qué costo.
type LotConsumption struct {
	LotID    string
	Quantity int64
	UnitCost decimal.Decimal
}

// PlanFIFO calcula el plan de consumo para satisfacer quantity unidades desde
// los lotes dados: más antiguo primero (purchase_date asc, desempate por id asc
// para determinismo), greedy hasta cubrir la cantidad. No muta los lotes.
// Si los lotes no alcanzan devuelve ErrInsufficientStock y ningún plan parcial.
func PlanFIFO(lots []*entity.StockLot, quantity int64) ([]LotConsumption, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	ordered := make([]*entity.StockLot, len(lots))
	copy(ordered, lots)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].PurchaseDate.Equal(ordered[j].PurchaseDate) {
			return ordered[i].PurchaseDate.Before(ordered[j].PurchaseDate)
		}
		return ordered[i].ID < ordered[j].ID
	})

	var plan []LotConsumption
	needed := quantity
	for _, lot := range ordered {
		if needed == 0 {
			break
		}
		remaining := lot.Remaining()
		if remaining <= 0 {
			continue
		}
		take := remaining
		if needed < take {
			take = needed
		}
		plan = append(plan, LotConsumption{LotID: lot.ID, Quantity: take, UnitCost: lot.UnitCost})
		needed -= take
	}
	if needed > 0 {
		return nil, domain.ErrInsufficientStock
	}
	return plan, nil
}

// PlanCOGS suma el costo del plan (Σ cantidad * costo unitario).
func PlanCOGS(plan []LotConsumption) decimal.Decimal {
	total := decimal.Zero
	for _, c := range plan {
		total = total.Add(c.UnitCost.Mul(decimal.NewFromInt(c.Quantity)))
	}
	return total
}
