package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/entregas-epp/internal/domain"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación sobre PostgreSQL (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, worker_id, worker_name, area, position, delivery_date, authorized_by, notes,
	total_amount, version, created_at, updated_at`

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	err := row.Scan(&d.ID, &d.WorkerID, &d.WorkerName, &d.Area, &d.Position, &d.DeliveryDate,
		&d.AuthorizedBy, &d.Notes, &d.TotalAmount, &d.Version, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID obtiene la entrega con sus líneas; nil, nil si no existe.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get delivery", err)
	}
	if err := r.loadItems(ctx, []*entity.Delivery{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// Create inserta cabecera y líneas con version 1.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO deliveries (id, worker_id, worker_name, area, position, delivery_date, authorized_by, notes,
			total_amount, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11)`,
		d.ID, d.WorkerID, d.WorkerName, d.Area, d.Position, d.DeliveryDate, d.AuthorizedBy, d.Notes,
		d.TotalAmount, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entrega %s ya existe", domain.ErrConflict, d.ID)
		}
		return wrapErr("create delivery", err)
	}
	if err := r.insertItems(ctx, d); err != nil {
		return err
	}
	d.Version = 1
	return nil
}

// Replace reemplaza cabecera y líneas si d.Version coincide con la confirmada.
func (r *DeliveryRepo) Replace(ctx context.Context, d *entity.Delivery) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE deliveries SET
			worker_id = $2, worker_name = $3, area = $4, position = $5, delivery_date = $6,
			authorized_by = $7, notes = $8, total_amount = $9, updated_at = $10, version = version + 1
		WHERE id = $1 AND version = $11`,
		d.ID, d.WorkerID, d.WorkerName, d.Area, d.Position, d.DeliveryDate,
		d.AuthorizedBy, d.Notes, d.TotalAmount, d.UpdatedAt, d.Version,
	)
	if err != nil {
		return wrapErr("replace delivery", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entrega %s versión %d", domain.ErrConflict, d.ID, d.Version)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM delivery_items WHERE delivery_id = $1`, d.ID); err != nil {
		return wrapErr("replace delivery items", err)
	}
	if err := r.insertItems(ctx, d); err != nil {
		return err
	}
	d.Version++
	return nil
}

// Delete elimina la entrega (las líneas caen en cascada) si la versión coincide.
func (r *DeliveryRepo) Delete(ctx context.Context, id string, version int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM deliveries WHERE id = $1 AND version = $2`, id, version)
	if err != nil {
		return wrapErr("delete delivery", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entrega %s versión %d", domain.ErrConflict, id, version)
	}
	return nil
}

// List lista entregas por fecha descendente con filtros opcionales.
func (r *DeliveryRepo) List(ctx context.Context, f repository.DeliveryFilter) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE 1=1`
	var args []any
	pos := 1
	if f.WorkerID != "" {
		query += fmt.Sprintf(" AND worker_id = $%d", pos)
		args = append(args, f.WorkerID)
		pos++
	}
	if f.Area != "" {
		query += fmt.Sprintf(" AND area = $%d", pos)
		args = append(args, f.Area)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND delivery_date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND delivery_date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	limit, offset := offsetLimit(f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY delivery_date DESC, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list deliveries", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, wrapErr("scan delivery", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list deliveries", err)
	}
	rows.Close()
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *DeliveryRepo) insertItems(ctx context.Context, d *entity.Delivery) error {
	b := &pgx.Batch{}
	for i, it := range d.Items {
		b.Queue(`
			INSERT INTO delivery_items (delivery_id, line_no, equipment_id, variant_id, quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, i+1, it.EquipmentID, it.VariantID, it.Quantity, it.UnitCost)
	}
	return execBatch(ctx, r.q, b, "insert delivery items")
}

func (r *DeliveryRepo) loadItems(ctx context.Context, list []*entity.Delivery) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.Delivery, len(list))
	for _, d := range list {
		ids = append(ids, d.ID)
		byID[d.ID] = d
	}
	rows, err := r.q.Query(ctx, `
		SELECT delivery_id, equipment_id, variant_id, quantity, unit_cost
		FROM delivery_items WHERE delivery_id = ANY($1)
		ORDER BY delivery_id, line_no`, ids)
	if err != nil {
		return wrapErr("get delivery items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var deliveryID string
		var it entity.DeliveryLineItem
		if err := rows.Scan(&deliveryID, &it.EquipmentID, &it.VariantID, &it.Quantity, &it.UnitCost); err != nil {
			return wrapErr("scan delivery item", err)
		}
		if d := byID[deliveryID]; d != nil {
			d.Items = append(d.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return wrapErr("get delivery items", err)
	}
	return nil
}
