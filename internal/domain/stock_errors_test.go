package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/entregas-epp/internal/domain"
)

func TestTypedErrors_UnwrapASentinel(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"insuficiente", &domain.InsufficientStockError{EquipmentID: "E1", Available: 2, Requested: 5}, domain.ErrInsufficientStock},
		{"talla", &domain.VariantNotFoundError{EquipmentID: "E1", VariantID: "XL"}, domain.ErrVariantNotFound},
		{"equipo", &domain.EquipmentNotFoundError{EquipmentID: "E9"}, domain.ErrNotFound},
		{"mezcla", &domain.VariantMismatchError{EquipmentID: "E1", HasVariants: true}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("aplicar: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.sentinel)
		})
	}
}

func TestInsufficientStockError_IdentificaTalla(t *testing.T) {
	err := error(&domain.InsufficientStockError{EquipmentID: "BOTAS", VariantID: "42", Available: 1, Requested: 3})

	var stockErr *domain.InsufficientStockError
	assert.True(t, errors.As(fmt.Errorf("x: %w", err), &stockErr))
	assert.Equal(t, "42", stockErr.VariantID)
	assert.Contains(t, err.Error(), "BOTAS")
	assert.Contains(t, err.Error(), "talla 42")
}
