package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/entregas-epp/internal/domain"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

var _ repository.EquipmentStockRepository = (*EquipmentStockRepo)(nil)

// EquipmentStockRepo implementación de EquipmentStockRepository sobre PostgreSQL (usable con pool o tx).
type EquipmentStockRepo struct {
	q Querier
}

// NewEquipmentStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewEquipmentStockRepository(q Querier) *EquipmentStockRepo {
	return &EquipmentStockRepo{q: q}
}

const equipmentColumns = `id, name, has_variants, quantity_on_hand, reorder_threshold, critical_threshold, version, updated_at`

// Get obtiene el stock de un equipo; nil, nil si no existe.
func (r *EquipmentStockRepo) Get(ctx context.Context, id string) (*entity.EquipmentStock, error) {
	m, err := r.GetMany(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return m[id], nil
}

// GetMany lee equipos y sus tallas en dos consultas.
func (r *EquipmentStockRepo) GetMany(ctx context.Context, ids []string) (map[string]*entity.EquipmentStock, error) {
	out := make(map[string]*entity.EquipmentStock, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+equipmentColumns+` FROM equipment_stock WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, wrapErr("get equipment stock", err)
	}
	list, err := scanEquipment(rows)
	if err != nil {
		return nil, wrapErr("scan equipment stock", err)
	}
	if err := r.loadVariants(ctx, list, `WHERE equipment_id = ANY($1)`, ids); err != nil {
		return nil, err
	}
	for _, st := range list {
		out[st.ID] = st
	}
	return out, nil
}

// List devuelve todo el catálogo de stock ordenado por ID.
func (r *EquipmentStockRepo) List(ctx context.Context) ([]*entity.EquipmentStock, error) {
	rows, err := r.q.Query(ctx, `SELECT `+equipmentColumns+` FROM equipment_stock ORDER BY id`)
	if err != nil {
		return nil, wrapErr("list equipment stock", err)
	}
	list, err := scanEquipment(rows)
	if err != nil {
		return nil, wrapErr("scan equipment stock", err)
	}
	if err := r.loadVariants(ctx, list, ``); err != nil {
		return nil, err
	}
	return list, nil
}

// Update escribe cantidades de equipo y tallas si la versión coincide.
// 0 filas afectadas -> domain.ErrConflict (otra transacción confirmó antes).
func (r *EquipmentStockRepo) Update(ctx context.Context, stock *entity.EquipmentStock) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE equipment_stock
		SET quantity_on_hand = $2, updated_at = $3, version = version + 1
		WHERE id = $1 AND version = $4`,
		stock.ID, stock.QuantityOnHand, stock.UpdatedAt, stock.Version,
	)
	if err != nil {
		return wrapErr("update equipment stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: equipo %s versión %d", domain.ErrConflict, stock.ID, stock.Version)
	}

	if len(stock.Variants) > 0 {
		b := &pgx.Batch{}
		for _, v := range stock.Variants {
			b.Queue(`UPDATE equipment_variants SET quantity_on_hand = $3 WHERE equipment_id = $1 AND variant_id = $2`,
				stock.ID, v.ID, v.QuantityOnHand)
		}
		if err := execBatch(ctx, r.q, b, "update equipment variants"); err != nil {
			return err
		}
	}
	stock.Version++
	return nil
}

// Upsert carga o reemplaza un equipo con sus tallas (catálogo/seed, fuera del motor de entregas).
// El total de equipos con tallas se recalcula antes de escribir.
func (r *EquipmentStockRepo) Upsert(ctx context.Context, stock *entity.EquipmentStock) error {
	stock.RecomputeAggregate()
	_, err := r.q.Exec(ctx, `
		INSERT INTO equipment_stock (id, name, has_variants, quantity_on_hand, reorder_threshold, critical_threshold, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			has_variants = EXCLUDED.has_variants,
			quantity_on_hand = EXCLUDED.quantity_on_hand,
			reorder_threshold = EXCLUDED.reorder_threshold,
			critical_threshold = EXCLUDED.critical_threshold,
			version = equipment_stock.version + 1,
			updated_at = now()`,
		stock.ID, stock.Name, stock.HasVariants, stock.QuantityOnHand, stock.ReorderThreshold, stock.CriticalThreshold,
	)
	if err != nil {
		return wrapErr("upsert equipment stock", err)
	}

	b := &pgx.Batch{}
	b.Queue(`DELETE FROM equipment_variants WHERE equipment_id = $1`, stock.ID)
	for _, v := range stock.Variants {
		b.Queue(`
			INSERT INTO equipment_variants (equipment_id, variant_id, label, quantity_on_hand, reorder_threshold, critical_threshold)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			stock.ID, v.ID, v.Label, v.QuantityOnHand, v.ReorderThreshold, v.CriticalThreshold)
	}
	return execBatch(ctx, r.q, b, "upsert equipment variants")
}

func (r *EquipmentStockRepo) loadVariants(ctx context.Context, list []*entity.EquipmentStock, where string, args ...any) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.EquipmentStock, len(list))
	for _, st := range list {
		byID[st.ID] = st
	}
	rows, err := r.q.Query(ctx, `
		SELECT equipment_id, variant_id, label, quantity_on_hand, reorder_threshold, critical_threshold
		FROM equipment_variants `+where+` ORDER BY equipment_id, variant_id`, args...)
	if err != nil {
		return wrapErr("get equipment variants", err)
	}
	defer rows.Close()
	for rows.Next() {
		var equipmentID string
		var v entity.StockVariant
		if err := rows.Scan(&equipmentID, &v.ID, &v.Label, &v.QuantityOnHand, &v.ReorderThreshold, &v.CriticalThreshold); err != nil {
			return wrapErr("scan equipment variant", err)
		}
		if st := byID[equipmentID]; st != nil {
			st.Variants = append(st.Variants, v)
		}
	}
	if err := rows.Err(); err != nil {
		return wrapErr("get equipment variants", err)
	}
	return nil
}

func scanEquipment(rows pgx.Rows) ([]*entity.EquipmentStock, error) {
	defer rows.Close()
	var list []*entity.EquipmentStock
	for rows.Next() {
		var st entity.EquipmentStock
		if err := rows.Scan(&st.ID, &st.Name, &st.HasVariants, &st.QuantityOnHand,
			&st.ReorderThreshold, &st.CriticalThreshold, &st.Version, &st.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// execBatch envía el batch y consume cada resultado; el primer error corta.
func execBatch(ctx context.Context, q Querier, b *pgx.Batch, op string) error {
	if b.Len() == 0 {
		return nil
	}
	br := q.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return wrapErr(op, err)
		}
	}
	if err := br.Close(); err != nil {
		return wrapErr(op, err)
	}
	return nil
}
