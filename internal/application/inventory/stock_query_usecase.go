package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/entregas-epp/internal/application/dto"
	"github.com/jhoicas/entregas-epp/internal/domain"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre el stock de EPP:
// posición de un equipo, lista de reposición y kardex.
type StockQueryUseCase struct {
	stockRepo repository.EquipmentStockRepository
	movRepo   repository.StockMovementRepository
}

// NewStockQueryUseCase construye el caso de uso de consultas de stock.
func NewStockQueryUseCase(
	stockRepo repository.EquipmentStockRepository,
	movRepo repository.StockMovementRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// GetStock devuelve la posición de stock del equipo con su semáforo por talla.
func (uc *StockQueryUseCase) GetStock(ctx context.Context, equipmentID string) (*dto.EquipmentStockDTO, error) {
	if equipmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.Get(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("obtener stock: %w", err)
	}
	if stock == nil {
		return nil, &domain.EquipmentNotFoundError{EquipmentID: equipmentID}
	}
	return dto.EquipmentStockFromEntity(stock), nil
}

// ListLowStock devuelve las posiciones (equipo o talla) en nivel de reorden o crítico,
// con la cantidad sugerida de pedido, ordenadas por mayor déficit primero.
func (uc *StockQueryUseCase) ListLowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	stocks, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar stock: %w", err)
	}

	items := make([]dto.LowStockItemDTO, 0)
	add := func(e *entity.EquipmentStock, variantID, label string, qty, reorder, critical int64) {
		level := entity.ClassifyStock(qty, reorder, critical)
		if level == entity.StockLevelOK {
			return
		}
		// stock ideal = 1.5 × punto de reorden (redondeado hacia arriba)
		ideal := (reorder*3 + 1) / 2
		suggested := ideal - qty
		if suggested < 0 {
			suggested = 0
		}
		items = append(items, dto.LowStockItemDTO{
			EquipmentID:       e.ID,
			EquipmentName:     e.Name,
			VariantID:         variantID,
			VariantLabel:      label,
			QuantityOnHand:    qty,
			ReorderThreshold:  reorder,
			CriticalThreshold: critical,
			Level:             string(level),
			Deficit:           reorder - qty,
			SuggestedOrderQty: suggested,
		})
	}
	for _, e := range stocks {
		if !e.HasVariants {
			add(e, "", "", e.QuantityOnHand, e.ReorderThreshold, e.CriticalThreshold)
			continue
		}
		for _, v := range e.Variants {
			add(e, v.ID, v.Label, v.QuantityOnHand, v.ReorderThreshold, v.CriticalThreshold)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Deficit != items[j].Deficit {
			return items[i].Deficit > items[j].Deficit
		}
		if items[i].EquipmentID != items[j].EquipmentID {
			return items[i].EquipmentID < items[j].EquipmentID
		}
		return items[i].VariantID < items[j].VariantID
	})
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}

// ListMovements kardex del equipo, del más reciente al más antiguo.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, equipmentID string, page dto.PageRequest) ([]dto.StockMovementDTO, error) {
	if equipmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	movs, err := uc.movRepo.ListByEquipment(ctx, equipmentID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	out := make([]dto.StockMovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.StockMovementFromEntity(m))
	}
	return out, nil
}
