package repository

import (
	"context"

	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

// StockMovementRepository puerto del kardex de movimientos por entrega.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByEquipment del más reciente al más antiguo.
	ListByEquipment(ctx context.Context, equipmentID string, limit, offset int) ([]*entity.StockMovement, error)
}
