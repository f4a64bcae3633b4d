package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/entregas-epp/internal/application/inventory"
	"github.com/jhoicas/entregas-epp/internal/domain"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	domaininv "github.com/jhoicas/entregas-epp/internal/domain/inventory"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

// StockAlert posición tocada por la operación que quedó en reorden o crítico.
type StockAlert struct {
	EquipmentID    string
	VariantID      string
	QuantityOnHand int64
	Level          entity.StockLevel
}

// Result resultado de una mutación confirmada.
type Result struct {
	DeliveryID string
	Changes    []inventory.StockChange
	Alerts     []StockAlert
}

// UseCase orquesta crear/editar/eliminar entregas: cada operación calcula el delta,
// aplica el stock y escribe la entrega en una sola transacción (todo o nada).
// Es el único punto de escritura de entregas y, vía StockApplier, de cantidades de stock.
type UseCase struct {
	txRunner     inventory.TxRunner
	applier      *inventory.StockApplier
	deliveryRepo repository.DeliveryRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewUseCase construye el orquestador. txRunner normalmente es un inventory.RetryingTxRunner;
// deliveryRepo se usa solo para lecturas fuera de transacción.
func NewUseCase(
	txRunner inventory.TxRunner,
	applier *inventory.StockApplier,
	deliveryRepo repository.DeliveryRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		applier:      applier,
		deliveryRepo: deliveryRepo,
		log:          log,
		now:          time.Now,
	}
}

// CreateDelivery registra la entrega y descuenta su stock. Devuelve el ID de la entrega.
func (uc *UseCase) CreateDelivery(ctx context.Context, items []entity.DeliveryLineItem, meta entity.DeliveryMetadata) (string, error) {
	res, err := uc.Create(ctx, items, meta)
	if err != nil {
		return "", err
	}
	return res.DeliveryID, nil
}

// UpdateDelivery reemplaza líneas y metadatos aplicando solo la diferencia de stock.
func (uc *UseCase) UpdateDelivery(ctx context.Context, id string, items []entity.DeliveryLineItem, meta entity.DeliveryMetadata) error {
	_, err := uc.Update(ctx, id, items, meta)
	return err
}

// DeleteDelivery elimina la entrega y devuelve al stock todo lo consumido.
func (uc *UseCase) DeleteDelivery(ctx context.Context, id string) error {
	_, err := uc.Delete(ctx, id)
	return err
}

// Create como CreateDelivery, devolviendo además cambios y alertas de stock.
func (uc *UseCase) Create(ctx context.Context, items []entity.DeliveryLineItem, meta entity.DeliveryMetadata) (*Result, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyDelivery
	}
	if err := validateLineItems(items); err != nil {
		return nil, err
	}

	now := uc.now()
	d := &entity.Delivery{
		ID:               uuid.New().String(),
		DeliveryMetadata: meta,
		Items:            entity.CloneLineItems(items),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if d.DeliveryDate.IsZero() {
		d.DeliveryDate = now
	}
	d.RecalculateTotal()
	adjustments := domaininv.ComputeDelta(nil, d.Items)

	var changes []inventory.StockChange
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.EquipmentStockRepository,
		deliveryRepo repository.DeliveryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		changes, err = uc.applier.Apply(ctx, stockRepo, movRepo, adjustments, inventory.ApplyRef{
			DeliveryID: d.ID, UserID: meta.AuthorizedBy, At: now,
		})
		if err != nil {
			return err
		}
		return deliveryRepo.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return uc.committed("entrega registrada", d.ID, changes), nil
}

// Update relee la entrega dentro de la transacción (estado confirmado, no el que trae el
// cliente), calcula Delta(anteriores, nuevas) y reemplaza líneas y metadatos.
// Orden de errores: NotFound, luego EmptyDelivery, luego validación de líneas.
// Una DeliveryDate vacía conserva la fecha anterior.
func (uc *UseCase) Update(ctx context.Context, id string, items []entity.DeliveryLineItem, meta entity.DeliveryMetadata) (*Result, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	var changes []inventory.StockChange
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.EquipmentStockRepository,
		deliveryRepo repository.DeliveryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		prev, err := deliveryRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("leer entrega: %w", err)
		}
		if prev == nil {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
		}
		if len(items) == 0 {
			return domain.ErrEmptyDelivery
		}
		if err := validateLineItems(items); err != nil {
			return err
		}

		next := prev.Clone()
		date := prev.DeliveryDate
		next.DeliveryMetadata = meta
		if next.DeliveryDate.IsZero() {
			next.DeliveryDate = date
		}
		next.Items = entity.CloneLineItems(items)
		next.UpdatedAt = now
		next.RecalculateTotal()

		adjustments := domaininv.ComputeDelta(prev.Items, next.Items)
		changes, err = uc.applier.Apply(ctx, stockRepo, movRepo, adjustments, inventory.ApplyRef{
			DeliveryID: id, UserID: meta.AuthorizedBy, At: now,
		})
		if err != nil {
			return err
		}
		return deliveryRepo.Replace(ctx, next)
	})
	if err != nil {
		return nil, err
	}
	return uc.committed("entrega actualizada", id, changes), nil
}

// Delete revierte por completo el consumo de la entrega y la elimina.
// Las devoluciones quedan en el kardex a nombre de quien autorizó la entrega.
func (uc *UseCase) Delete(ctx context.Context, id string) (*Result, error) {
	return uc.deleteAs(ctx, id, "")
}

// deleteAs como Delete; userID (si no es vacío) queda como autor de las devoluciones.
func (uc *UseCase) deleteAs(ctx context.Context, id, userID string) (*Result, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	var changes []inventory.StockChange
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.EquipmentStockRepository,
		deliveryRepo repository.DeliveryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		prev, err := deliveryRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("leer entrega: %w", err)
		}
		if prev == nil {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
		}

		actor := userID
		if actor == "" {
			actor = prev.AuthorizedBy
		}
		adjustments := domaininv.ComputeDelta(prev.Items, nil)
		changes, err = uc.applier.Apply(ctx, stockRepo, movRepo, adjustments, inventory.ApplyRef{
			DeliveryID: id, UserID: actor, At: now,
		})
		if err != nil {
			return err
		}
		return deliveryRepo.Delete(ctx, id, prev.Version)
	})
	if err != nil {
		return nil, err
	}
	return uc.committed("entrega eliminada", id, changes), nil
}

// GetDelivery obtiene una entrega activa.
func (uc *UseCase) GetDelivery(ctx context.Context, id string) (*entity.Delivery, error) {
	d, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener entrega: %w", err)
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// ListDeliveries lista entregas (más recientes primero) con filtros opcionales.
func (uc *UseCase) ListDeliveries(ctx context.Context, filter repository.DeliveryFilter) ([]*entity.Delivery, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	list, err := uc.deliveryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar entregas: %w", err)
	}
	return list, nil
}

// committed registra en log la operación confirmada y arma el resultado con alertas.
func (uc *UseCase) committed(msg, id string, changes []inventory.StockChange) *Result {
	res := &Result{DeliveryID: id, Changes: changes}
	for _, ch := range changes {
		if ch.Level == entity.StockLevelOK || ch.Level == "" {
			continue
		}
		res.Alerts = append(res.Alerts, StockAlert{
			EquipmentID:    ch.EquipmentID,
			VariantID:      ch.VariantID,
			QuantityOnHand: ch.After,
			Level:          ch.Level,
		})
		uc.log.Warn().
			Str("equipment_id", ch.EquipmentID).
			Str("variant_id", ch.VariantID).
			Int64("quantity_on_hand", ch.After).
			Str("level", string(ch.Level)).
			Msg("stock bajo umbral")
	}
	uc.log.Info().Str("delivery_id", id).Int("adjustments", len(changes)).Msg(msg)
	return res
}

// validateLineItems: equipo obligatorio, 0 < cantidad <= entity.MaxLineQuantity, costo unitario no negativo.
// La coherencia talla/equipo se valida contra el stock dentro de la transacción.
func validateLineItems(items []entity.DeliveryLineItem) error {
	for i, it := range items {
		if it.EquipmentID == "" {
			return fmt.Errorf("%w: ítem %d sin equipo", domain.ErrInvalidInput, i+1)
		}
		if it.Quantity <= 0 || it.Quantity > entity.MaxLineQuantity {
			return fmt.Errorf("%w: ítem %d con cantidad %d (rango 1..%d)", domain.ErrInvalidInput, i+1, it.Quantity, entity.MaxLineQuantity)
		}
		if it.UnitCost.IsNegative() {
			return fmt.Errorf("%w: ítem %d con costo unitario negativo", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}
