package domain

import "fmt"

// InsufficientStockError identifica el equipo (y talla) que quedaría en negativo.
type InsufficientStockError struct {
	EquipmentID string
	VariantID   string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	if e.VariantID != "" {
		return fmt.Sprintf("stock insuficiente para %s talla %s: disponible %d, solicitado %d",
			e.EquipmentID, e.VariantID, e.Available, e.Requested)
	}
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.EquipmentID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// VariantNotFoundError: la línea referencia una talla que el equipo no tiene.
type VariantNotFoundError struct {
	EquipmentID string
	VariantID   string
}

func (e *VariantNotFoundError) Error() string {
	return fmt.Sprintf("talla %s no existe en el equipo %s", e.VariantID, e.EquipmentID)
}

func (e *VariantNotFoundError) Unwrap() error { return ErrVariantNotFound }

// EquipmentNotFoundError: el equipo referenciado no existe en el catálogo.
type EquipmentNotFoundError struct {
	EquipmentID string
}

func (e *EquipmentNotFoundError) Error() string {
	return fmt.Sprintf("equipo %s no encontrado", e.EquipmentID)
}

func (e *EquipmentNotFoundError) Unwrap() error { return ErrNotFound }

// VariantMismatchError: línea con talla sobre equipo sin tallas, o al revés.
type VariantMismatchError struct {
	EquipmentID string
	VariantID   string
	HasVariants bool
}

func (e *VariantMismatchError) Error() string {
	if e.HasVariants {
		return fmt.Sprintf("el equipo %s se maneja por tallas: indique la talla", e.EquipmentID)
	}
	return fmt.Sprintf("el equipo %s no maneja tallas (recibida %s)", e.EquipmentID, e.VariantID)
}

func (e *VariantMismatchError) Unwrap() error { return ErrInvalidInput }
