package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/domain"
)

func TestRuleError_UnwrapsKind(t *testing.T) {
	err := fmt.Errorf("recibir compra: %w", domain.Conflict("la compra ya está finalizada"))

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "la compra ya está finalizada")

	var rule *domain.RuleError
	assert.True(t, errors.As(err, &rule))
	assert.Equal(t, "la compra ya está finalizada", rule.Rule)
}

func TestRuleError_DuplicateIsConflict(t *testing.T) {
	err := domain.Duplicate("código ya existe")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRuleError_SinRegla_UsaMensajeDelKind(t *testing.T) {
	err := &domain.RuleError{Kind: domain.ErrInsufficientStock}
	assert.Equal(t, domain.ErrInsufficientStock.Error(), err.Error())
}
