package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrEmptyDelivery        = errors.New("la entrega debe tener al menos un ítem")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrVariantNotFound      = errors.New("talla o variante no encontrada")
	ErrConcurrencyExhausted = errors.New("reintentos por concurrencia agotados, intente de nuevo")
	ErrStorageUnavailable   = errors.New("almacenamiento no disponible")

	// ErrConflict señala una escritura concurrente detectada al confirmar (conflicto optimista).
	// Es la única señal que dispara reintentos; nunca llega al caller final.
	ErrConflict = errors.New("conflicto con el estado actual")
)
