package dto

import (
	"time"

	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

// StockVariantDTO posición de una talla.
type StockVariantDTO struct {
	VariantID         string `json:"variant_id"`
	Label             string `json:"label"`
	QuantityOnHand    int64  `json:"quantity_on_hand"`
	ReorderThreshold  int64  `json:"reorder_threshold"`
	CriticalThreshold int64  `json:"critical_threshold"`
	Level             string `json:"level"`
}

// EquipmentStockDTO respuesta de GET /api/equipment/:id/stock.
// Con tallas, quantity_on_hand es la suma de las tallas.
type EquipmentStockDTO struct {
	EquipmentID       string            `json:"equipment_id"`
	Name              string            `json:"name"`
	HasVariants       bool              `json:"has_variants"`
	QuantityOnHand    int64             `json:"quantity_on_hand"`
	ReorderThreshold  int64             `json:"reorder_threshold,omitempty"`
	CriticalThreshold int64             `json:"critical_threshold,omitempty"`
	Level             string            `json:"level,omitempty"`
	Variants          []StockVariantDTO `json:"variants,omitempty"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// EquipmentStockFromEntity arma el DTO con el semáforo calculado.
func EquipmentStockFromEntity(e *entity.EquipmentStock) *EquipmentStockDTO {
	out := &EquipmentStockDTO{
		EquipmentID:    e.ID,
		Name:           e.Name,
		HasVariants:    e.HasVariants,
		QuantityOnHand: e.QuantityOnHand,
		UpdatedAt:      e.UpdatedAt,
	}
	if !e.HasVariants {
		out.ReorderThreshold = e.ReorderThreshold
		out.CriticalThreshold = e.CriticalThreshold
		out.Level = string(e.Level(""))
		return out
	}
	out.Variants = make([]StockVariantDTO, 0, len(e.Variants))
	for _, v := range e.Variants {
		out.Variants = append(out.Variants, StockVariantDTO{
			VariantID:         v.ID,
			Label:             v.Label,
			QuantityOnHand:    v.QuantityOnHand,
			ReorderThreshold:  v.ReorderThreshold,
			CriticalThreshold: v.CriticalThreshold,
			Level:             string(entity.ClassifyStock(v.QuantityOnHand, v.ReorderThreshold, v.CriticalThreshold)),
		})
	}
	return out
}

// LowStockItemDTO posición (equipo o talla) en nivel de reorden o crítico.
type LowStockItemDTO struct {
	EquipmentID       string `json:"equipment_id"`
	EquipmentName     string `json:"equipment_name"`
	VariantID         string `json:"variant_id,omitempty"`
	VariantLabel      string `json:"variant_label,omitempty"`
	QuantityOnHand    int64  `json:"quantity_on_hand"`
	ReorderThreshold  int64  `json:"reorder_threshold"`
	CriticalThreshold int64  `json:"critical_threshold"`
	Level             string `json:"level"`
	Deficit           int64  `json:"deficit"`             // reorden − disponible
	SuggestedOrderQty int64  `json:"suggested_order_qty"` // 1.5 × reorden − disponible
	Priority          int    `json:"priority"`            // 1 = más urgente
}

// StockMovementDTO fila del kardex.
type StockMovementDTO struct {
	ID           string    `json:"id"`
	DeliveryID   string    `json:"delivery_id"`
	EquipmentID  string    `json:"equipment_id"`
	VariantID    string    `json:"variant_id,omitempty"`
	Type         string    `json:"type"`
	Delta        int64     `json:"delta"`
	BalanceAfter int64     `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    string    `json:"created_by,omitempty"`
}

// StockMovementFromEntity mapea el movimiento.
func StockMovementFromEntity(m *entity.StockMovement) StockMovementDTO {
	return StockMovementDTO{
		ID:           m.ID,
		DeliveryID:   m.DeliveryID,
		EquipmentID:  m.EquipmentID,
		VariantID:    m.VariantID,
		Type:         m.Type,
		Delta:        m.Delta,
		BalanceAfter: m.BalanceAfter,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}
