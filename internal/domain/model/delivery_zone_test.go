package model_test

import (
	"testing"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDeliveryZone(t *testing.T) {
	z, ok := model.FindDeliveryZone("chacao")
	require.True(t, ok)
	assert.Equal(t, "Chacao", z.Label)
	assert.False(t, z.Cost.IsNegative())
	assert.NotEmpty(t, z.ETA)

	_, ok = model.FindDeliveryZone("marte")
	assert.False(t, ok)
}

func TestPaymentMethodLabels(t *testing.T) {
	assert.Equal(t, "Pago Móvil", model.PaymentPagoMovil.Label())
	assert.Equal(t, "Zelle", model.PaymentZelle.Label())
	assert.Equal(t, "Efectivo", model.PaymentEfectivo.Label())
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "en_route", "delivered", "cancelled"} {
		assert.True(t, model.ValidOrderStatus(s), s)
	}
	assert.False(t, model.ValidOrderStatus("SHIPPED"))
	assert.False(t, model.ValidOrderStatus(""))
}
