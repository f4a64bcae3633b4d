package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/entregas-epp/internal/domain"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	domaininv "github.com/jhoicas/entregas-epp/internal/domain/inventory"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

// ApplyRef referencia del movimiento: entrega que lo origina, usuario y momento.
type ApplyRef struct {
	DeliveryID string
	UserID     string
	At         time.Time
}

// StockChange resultado de aplicar un ajuste a una posición de stock.
type StockChange struct {
	EquipmentID string
	VariantID   string
	Delta       int64
	Before      int64
	After       int64
	Level       entity.StockLevel
}

// StockApplier aplica ajustes de stock todo-o-nada dentro de la transacción del caller.
// Primero valida todo sobre copias; solo si ningún ajuste falla escribe stock y kardex.
type StockApplier struct{}

// NewStockApplier construye el aplicador.
func NewStockApplier() *StockApplier { return &StockApplier{} }

// Apply lee una vez cada equipo tocado, valida que ninguna cantidad quede negativa,
// recalcula el total derivado de los equipos por talla y persiste.
// Con cero ajustes no lee ni escribe nada.
func (a *StockApplier) Apply(
	ctx context.Context,
	stockRepo repository.EquipmentStockRepository,
	movRepo repository.StockMovementRepository,
	adjustments domaininv.Adjustments,
	ref ApplyRef,
) ([]StockChange, error) {
	if len(adjustments) == 0 {
		return nil, nil
	}

	stocks, err := stockRepo.GetMany(ctx, adjustments.EquipmentIDs())
	if err != nil {
		return nil, fmt.Errorf("leer stock: %w", err)
	}

	// 1) Validar y calcular sobre copias (nada se escribe si algo falla)
	pending := make(map[string]*entity.EquipmentStock, len(stocks))
	order := make([]string, 0, len(stocks))
	changes := make([]StockChange, 0, len(adjustments))
	for _, adj := range adjustments.Sorted() {
		next, ok := pending[adj.EquipmentID]
		if !ok {
			current := stocks[adj.EquipmentID]
			if current == nil {
				return nil, &domain.EquipmentNotFoundError{EquipmentID: adj.EquipmentID}
			}
			next = current.Clone()
			pending[adj.EquipmentID] = next
			order = append(order, adj.EquipmentID)
		}
		change, err := applyOne(next, adj)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}

	// 2) Escribir stock (con verificación de versión) y kardex
	for _, id := range order {
		next := pending[id]
		next.RecomputeAggregate()
		next.UpdatedAt = ref.At
		if err := stockRepo.Update(ctx, next); err != nil {
			return nil, err
		}
	}
	for i := range changes {
		ch := &changes[i]
		ch.Level = pending[ch.EquipmentID].Level(ch.VariantID)
		movType := entity.MovementTypeDeliveryOut
		if ch.Delta > 0 {
			movType = entity.MovementTypeDeliveryReturn
		}
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			DeliveryID:   ref.DeliveryID,
			EquipmentID:  ch.EquipmentID,
			VariantID:    ch.VariantID,
			Type:         movType,
			Delta:        ch.Delta,
			BalanceAfter: ch.After,
			CreatedAt:    ref.At,
			CreatedBy:    ref.UserID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return nil, err
		}
	}
	return changes, nil
}

// applyOne aplica un ajuste sobre la copia del equipo.
func applyOne(stock *entity.EquipmentStock, adj domaininv.StockAdjustment) (StockChange, error) {
	change := StockChange{EquipmentID: adj.EquipmentID, VariantID: adj.VariantID, Delta: adj.Delta}

	if adj.VariantID == "" {
		if stock.HasVariants {
			return change, &domain.VariantMismatchError{EquipmentID: stock.ID, HasVariants: true}
		}
		newQty, ok := addQty(stock.QuantityOnHand, adj.Delta)
		if !ok {
			return change, fmt.Errorf("%w: ajuste %d desborda el stock de %s", domain.ErrInvalidInput, adj.Delta, stock.ID)
		}
		if newQty < 0 {
			return change, &domain.InsufficientStockError{
				EquipmentID: stock.ID, Available: stock.QuantityOnHand, Requested: -adj.Delta,
			}
		}
		change.Before, change.After = stock.QuantityOnHand, newQty
		stock.QuantityOnHand = newQty
		return change, nil
	}

	if !stock.HasVariants {
		return change, &domain.VariantMismatchError{EquipmentID: stock.ID, VariantID: adj.VariantID}
	}
	v, ok := stock.Variant(adj.VariantID)
	if !ok {
		return change, &domain.VariantNotFoundError{EquipmentID: stock.ID, VariantID: adj.VariantID}
	}
	newQty, ok := addQty(v.QuantityOnHand, adj.Delta)
	if !ok {
		return change, fmt.Errorf("%w: ajuste %d desborda el stock de %s talla %s", domain.ErrInvalidInput, adj.Delta, stock.ID, v.ID)
	}
	if newQty < 0 {
		return change, &domain.InsufficientStockError{
			EquipmentID: stock.ID, VariantID: v.ID, Available: v.QuantityOnHand, Requested: -adj.Delta,
		}
	}
	change.Before, change.After = v.QuantityOnHand, newQty
	v.QuantityOnHand = newQty
	return change, nil
}

// addQty suma con detección de desbordamiento de int64.
func addQty(cur, delta int64) (int64, bool) {
	sum := cur + delta
	if (delta > 0 && sum < cur) || (delta < 0 && sum > cur) {
		return 0, false
	}
	return sum, true
}
