package repository

import (
	"context"
	"time"

	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

// DeliveryFilter filtros para listar entregas. Campos vacíos no filtran.
type DeliveryFilter struct {
	WorkerID string
	Area     string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// DeliveryRepository puerto de persistencia de entregas (participa en la misma tx que el stock).
type DeliveryRepository interface {
	// GetByID devuelve nil, nil si la entrega no existe.
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	// Create persiste la entrega y sus líneas; deja delivery.Version en 1.
	Create(ctx context.Context, delivery *entity.Delivery) error
	// Replace reemplaza cabecera y líneas si delivery.Version coincide (domain.ErrConflict si no).
	Replace(ctx context.Context, delivery *entity.Delivery) error
	// Delete elimina la entrega si la versión coincide (domain.ErrConflict si no).
	Delete(ctx context.Context, id string, version int64) error
	List(ctx context.Context, filter DeliveryFilter) ([]*entity.Delivery, error)
}
