package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMaskValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4242424242424242", "************4242"},
		{"000123456789", "********6789"},
		{"110000000", "*****0000"},
		{"12345", "*2345"},
		{"4242", "4242"},
		{"123", "123"},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, maskValue(tt.in), "maskValue(%q)", tt.in)
	}
}

func TestMaskedConfiguration(t *testing.T) {
	m := &PaymentMethod{
		Configuration: datatypes.JSONMap{
			"cardNumber":    "4242424242424242",
			"accountNumber": "000123456789",
			"routingNumber": "110000000",
			"expiryMonth":   "12",
			"brand":         "visa",
		},
	}

	masked := m.MaskedConfiguration()

	require.Equal(t, "************4242", masked["cardNumber"])
	require.Equal(t, "********6789", masked["accountNumber"])
	require.Equal(t, "*****0000", masked["routingNumber"])
	require.Equal(t, "12", masked["expiryMonth"])
	require.Equal(t, "visa", masked["brand"])

	// The stored configuration is untouched.
	require.Equal(t, "4242424242424242", m.Configuration["cardNumber"])
}

func TestMaskedConfigurationNonStringValues(t *testing.T) {
	m := &PaymentMethod{
		Configuration: datatypes.JSONMap{
			"cardNumber": 4242424242424242,
			"limit":      100.0,
		},
	}

	masked := m.MaskedConfiguration()
	require.Equal(t, 4242424242424242, masked["cardNumber"])
	require.Equal(t, 100.0, masked["limit"])
}

func TestMaskedConfigurationNil(t *testing.T) {
	m := &PaymentMethod{}
	require.Nil(t, m.MaskedConfiguration())
}
