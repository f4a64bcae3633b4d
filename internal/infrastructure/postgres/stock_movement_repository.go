package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kardex de movimientos por entrega sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, delivery_id, equipment_id, variant_id, type, delta, balance_after, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.DeliveryID, m.EquipmentID, m.VariantID, m.Type, m.Delta, m.BalanceAfter, m.CreatedAt, createdBy,
	)
	if err != nil {
		return wrapErr("create stock movement", err)
	}
	return nil
}

// ListByEquipment lista movimientos de un equipo, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByEquipment(ctx context.Context, equipmentID string, limit, offset int) ([]*entity.StockMovement, error) {
	limit, offset = offsetLimit(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, delivery_id, equipment_id, variant_id, type, delta, balance_after, created_at, created_by
		FROM stock_movements WHERE equipment_id = $1
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`, equipmentID, limit, offset)
	if err != nil {
		return nil, wrapErr("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.DeliveryID, &m.EquipmentID, &m.VariantID, &m.Type,
			&m.Delta, &m.BalanceAfter, &m.CreatedAt, &createdBy); err != nil {
			return nil, wrapErr("scan stock movement", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list stock movements", err)
	}
	return list, nil
}
