package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSuccessStatus(t *testing.T) {
	for _, raw := range []string{"successful", "completed", "paid", "success", "SUCCESSFUL", " Paid "} {
		assert.True(t, IsSuccessStatus(raw), "raw %q", raw)
	}
	for _, raw := range []string{"", "failed", "cancelled", "pending", "succ"} {
		assert.False(t, IsSuccessStatus(raw), "raw %q", raw)
	}
}

func TestNormalizePaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentSuccessful, NormalizePaymentStatus("COMPLETED"))
	assert.Equal(t, PaymentSuccessful, NormalizePaymentStatus("success"))
	assert.Equal(t, PaymentFailed, NormalizePaymentStatus("failed"))
	assert.Equal(t, PaymentPending, NormalizePaymentStatus("processing"))
	assert.Equal(t, PaymentPending, NormalizePaymentStatus(""))
}
