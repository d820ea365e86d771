package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestPaymentStatusValid(t *testing.T) {
	for _, s := range []PaymentStatus{StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded} {
		require.True(t, s.Valid(), "%s should be valid", s)
	}
	require.False(t, PaymentStatus("SETTLED").Valid())
	require.False(t, PaymentStatus("completed").Valid())
	require.False(t, PaymentStatus("").Valid())
}

func TestPaymentStatusTerminal(t *testing.T) {
	require.True(t, StatusCompleted.Terminal())
	require.True(t, StatusFailed.Terminal())
	require.False(t, StatusPending.Terminal())
	require.False(t, StatusProcessing.Terminal())
	require.False(t, StatusRefunded.Terminal())
}

func TestApplyGatewayUpdate(t *testing.T) {
	now := time.Now()
	p := &Payment{
		Status:   StatusPending,
		Metadata: datatypes.JSONMap{"orderId": "ORD-1", "channel": "web"},
	}

	applied := p.ApplyGatewayUpdate(GatewayUpdate{
		Status:              StatusCompleted,
		GatewayReference:    "gw-1",
		GatewayResponseCode: "00",
		Metadata:            map[string]interface{}{"channel": "gateway", "authCode": "A1"},
	}, now)

	require.True(t, applied)
	require.Equal(t, StatusCompleted, p.Status)
	require.Equal(t, "gw-1", p.GatewayReference)
	require.Equal(t, "00", p.GatewayResponseCode)
	require.Equal(t, &now, p.CompletedAt)

	// Last writer wins per key, untouched keys survive.
	require.Equal(t, "ORD-1", p.Metadata["orderId"])
	require.Equal(t, "gateway", p.Metadata["channel"])
	require.Equal(t, "A1", p.Metadata["authCode"])
}

func TestApplyGatewayUpdateTerminalGate(t *testing.T) {
	completedAt := time.Now().Add(-time.Hour)
	for _, status := range []PaymentStatus{StatusCompleted, StatusFailed} {
		p := &Payment{
			Status:           status,
			GatewayReference: "gw-original",
			Metadata:         datatypes.JSONMap{"orderId": "ORD-1"},
			CompletedAt:      &completedAt,
		}

		applied := p.ApplyGatewayUpdate(GatewayUpdate{
			Status:           StatusFailed,
			GatewayReference: "gw-late",
			ErrorMessage:     "too late",
			Metadata:         map[string]interface{}{"late": true},
		}, time.Now())

		require.False(t, applied)
		require.Equal(t, status, p.Status)
		require.Equal(t, "gw-original", p.GatewayReference)
		require.Empty(t, p.ErrorMessage)
		require.Equal(t, &completedAt, p.CompletedAt)
		require.NotContains(t, p.Metadata, "late")
	}
}

func TestApplyGatewayUpdateNoCompletedAtOnFailure(t *testing.T) {
	p := &Payment{Status: StatusProcessing}

	applied := p.ApplyGatewayUpdate(GatewayUpdate{
		Status:           StatusFailed,
		GatewayReference: "gw-1",
		ErrorMessage:     "declined",
	}, time.Now())

	require.True(t, applied)
	require.Nil(t, p.CompletedAt)
	require.Equal(t, "declined", p.ErrorMessage)
}

func TestMergeMetadata(t *testing.T) {
	base := datatypes.JSONMap{"a": "1", "b": "2"}
	merged := MergeMetadata(base, map[string]interface{}{"b": "patched", "c": "3"})

	require.Equal(t, "1", merged["a"])
	require.Equal(t, "patched", merged["b"])
	require.Equal(t, "3", merged["c"])

	// Base must not be mutated.
	require.Equal(t, "2", base["b"])
	require.NotContains(t, base, "c")
}

func TestMergeMetadataEmpty(t *testing.T) {
	require.Nil(t, MergeMetadata(nil, nil))

	merged := MergeMetadata(nil, map[string]interface{}{"k": "v"})
	require.Equal(t, "v", merged["k"])

	base := datatypes.JSONMap{"k": "v"}
	require.Equal(t, base, MergeMetadata(base, nil))
}
