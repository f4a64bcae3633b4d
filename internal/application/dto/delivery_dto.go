package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

// DeliveryItemRequest línea de la entrega en el body.
type DeliveryItemRequest struct {
	EquipmentID string          `json:"equipment_id"`
	VariantID   string          `json:"variant_id,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// DeliveryRequest body para POST /api/deliveries y PUT /api/deliveries/:id.
// En PUT las líneas reemplazan por completo a las anteriores.
type DeliveryRequest struct {
	WorkerID     string                `json:"worker_id"`
	WorkerName   string                `json:"worker_name"`
	Area         string                `json:"area"`
	Position     string                `json:"position,omitempty"`
	DeliveryDate *time.Time            `json:"delivery_date,omitempty"`
	AuthorizedBy string                `json:"authorized_by,omitempty"` // vacío = usuario del token
	Notes        string                `json:"notes,omitempty"`
	Items        []DeliveryItemRequest `json:"items"`
}

// DeliveryItemDTO línea en respuestas.
type DeliveryItemDTO struct {
	EquipmentID string          `json:"equipment_id"`
	VariantID   string          `json:"variant_id,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// DeliveryResponse entrega completa.
type DeliveryResponse struct {
	ID           string            `json:"id"`
	WorkerID     string            `json:"worker_id"`
	WorkerName   string            `json:"worker_name"`
	Area         string            `json:"area"`
	Position     string            `json:"position,omitempty"`
	DeliveryDate time.Time         `json:"delivery_date"`
	AuthorizedBy string            `json:"authorized_by"`
	Notes        string            `json:"notes,omitempty"`
	Items        []DeliveryItemDTO `json:"items"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	Version      int64             `json:"version"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// DeliveryFromEntity mapea la entrega a su respuesta.
func DeliveryFromEntity(d *entity.Delivery) *DeliveryResponse {
	items := make([]DeliveryItemDTO, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, DeliveryItemDTO{
			EquipmentID: it.EquipmentID,
			VariantID:   it.VariantID,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
			Subtotal:    it.Subtotal(),
		})
	}
	return &DeliveryResponse{
		ID:           d.ID,
		WorkerID:     d.WorkerID,
		WorkerName:   d.WorkerName,
		Area:         d.Area,
		Position:     d.Position,
		DeliveryDate: d.DeliveryDate,
		AuthorizedBy: d.AuthorizedBy,
		Notes:        d.Notes,
		Items:        items,
		TotalAmount:  d.TotalAmount,
		Version:      d.Version,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// StockAlertDTO posición que quedó en reorden o crítico tras la operación.
type StockAlertDTO struct {
	EquipmentID    string `json:"equipment_id"`
	VariantID      string `json:"variant_id,omitempty"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
	Level          string `json:"level"`
}

// DeliveryMutationResponse respuesta de crear/editar/eliminar.
type DeliveryMutationResponse struct {
	DeliveryID string          `json:"delivery_id"`
	Alerts     []StockAlertDTO `json:"alerts"`
}
