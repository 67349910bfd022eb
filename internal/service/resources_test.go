package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/record-services/internal/models"
	"github.com/rogerio-castellano/record-services/internal/repo"
)

func TestDefaultPort(t *testing.T) {
	want := map[string]int{Users: 5000, Products: 5001, Orders: 5002, Invoices: 5003}
	for _, name := range Names {
		port, err := DefaultPort(name)
		require.NoError(t, err)
		assert.Equal(t, want[name], port)
	}

	_, err := DefaultPort("payments")
	assert.Error(t, err)
}

func TestInvoiceResource_IgnoresClientDate(t *testing.T) {
	res := InvoiceResource(repo.NewInMemoryInvoiceRepository())
	now := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)

	values, errs := res.Schema.Load(map[string]any{
		"order_id":    json.Number("3"),
		"amount":      json.Number("12.5"),
		"date_issued": "1999-01-01",
	})
	require.Empty(t, errs)
	assert.NotContains(t, values, "date_issued")

	inv := res.Build(values, now)
	assert.Equal(t, "2026-03-14", inv.DateIssued.String())
	assert.Equal(t, 3, inv.OrderID)
	assert.Equal(t, 12.5, inv.Amount)
}

func TestProductResource_DescriptionDefaultsToEmpty(t *testing.T) {
	res := ProductResource(repo.NewInMemoryProductRepository())

	values, errs := res.Schema.Load(map[string]any{"name": "Desk", "price": json.Number("0")})
	require.Empty(t, errs)
	assert.Equal(t, models.Product{Name: "Desk", Description: "", Price: 0}, res.Build(values, time.Now()))
}

func TestUserResource_RequiredFields(t *testing.T) {
	res := UserResource(repo.NewInMemoryUserRepository())

	_, errs := res.Schema.Load(map[string]any{})
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Equal(t, "User not found", res.NotFoundMessage)
	assert.ErrorIs(t, res.Conflict, repo.ErrEmailAlreadyInUse)
}
