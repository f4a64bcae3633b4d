package inventory

import (
	"context"

	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

// TxFunc unidad de trabajo: recibe repositorios atados a la transacción.
// Puede ejecutarse más de una vez (reintentos), así que no debe arrastrar estado entre llamadas.
type TxFunc func(
	stockRepo repository.EquipmentStockRepository,
	deliveryRepo repository.DeliveryRepository,
	movRepo repository.StockMovementRepository,
) error

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil, Rollback si no.
// Un conflicto optimista al leer/escribir/confirmar se reporta como domain.ErrConflict.
type TxRunner interface {
	Run(ctx context.Context, fn TxFunc) error
}
