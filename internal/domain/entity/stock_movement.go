package entity

import "time"

// Tipos de movimiento de stock generados por entregas.
const (
	MovementTypeDeliveryOut    = "DELIVERY_OUT"    // consumo por entrega nueva o ampliada
	MovementTypeDeliveryReturn = "DELIVERY_RETURN" // devolución por edición o anulación
)

// StockMovement registro de kardex: un ajuste aplicado a una posición de stock.
// DeliveryID referencia la entrega que lo originó (se conserva aunque la entrega se elimine).
type StockMovement struct {
	ID           string
	DeliveryID   string
	EquipmentID  string
	VariantID    string
	Type         string
	Delta        int64 // negativo salida, positivo devolución
	BalanceAfter int64
	CreatedAt    time.Time
	CreatedBy    string
}
