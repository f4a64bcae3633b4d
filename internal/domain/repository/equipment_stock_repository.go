package repository

import (
	"context"

	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

// EquipmentStockRepository puerto del catálogo de stock de EPP.
// Dentro de una transacción, las lecturas quedan en el alcance de aislamiento de la tx.
type EquipmentStockRepository interface {
	// Get devuelve nil, nil si el equipo no existe.
	Get(ctx context.Context, id string) (*entity.EquipmentStock, error)
	// GetMany lee varios equipos en una sola pasada; los ausentes no aparecen en el mapa.
	GetMany(ctx context.Context, ids []string) (map[string]*entity.EquipmentStock, error)
	List(ctx context.Context) ([]*entity.EquipmentStock, error)
	// Update escribe las cantidades si stock.Version coincide con la confirmada;
	// si no, retorna domain.ErrConflict. En éxito incrementa stock.Version.
	Update(ctx context.Context, stock *entity.EquipmentStock) error
}
