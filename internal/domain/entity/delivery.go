package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity tope de unidades por línea de entrega. Mantiene sumas y deltas dentro de int64.
const MaxLineQuantity int64 = 1_000_000

// DeliveryLineItem una línea de la entrega: equipo, talla opcional, cantidad y costo unitario.
type DeliveryLineItem struct {
	EquipmentID string
	VariantID   string // vacío = equipo sin tallas
	Quantity    int64
	UnitCost    decimal.Decimal
}

// Subtotal = Quantity * UnitCost.
func (i DeliveryLineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitCost)
}

// DeliveryMetadata datos del trabajador y de quien autoriza la entrega.
type DeliveryMetadata struct {
	WorkerID     string
	WorkerName   string
	Area         string
	Position     string // cargo
	DeliveryDate time.Time
	AuthorizedBy string
	Notes        string
}

// Delivery representa una entrega de EPP a un trabajador.
// Las líneas se reemplazan completas al editar; TotalAmount se deriva de ellas.
type Delivery struct {
	ID string
	DeliveryMetadata
	Items       []DeliveryLineItem
	TotalAmount decimal.Decimal
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecalculateTotal recalcula TotalAmount = Σ subtotales.
func (d *Delivery) RecalculateTotal() {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.Subtotal())
	}
	d.TotalAmount = total
}

// Clone copia profunda de la entrega.
func (d *Delivery) Clone() *Delivery {
	if d == nil {
		return nil
	}
	c := *d
	c.Items = CloneLineItems(d.Items)
	return &c
}

// CloneLineItems copia el slice de líneas.
func CloneLineItems(items []DeliveryLineItem) []DeliveryLineItem {
	if items == nil {
		return nil
	}
	out := make([]DeliveryLineItem, len(items))
	copy(out, items)
	return out
}
