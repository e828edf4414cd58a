package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRequest(t *testing.T) {
	sub := OffboardingSubmission{
		FullName:             "  Priya Raman ",
		EmployeeID:           "ATS0123",
		AlternateContactName: "   ",
		LaptopSerial:         " LT-4431 ",
	}

	req := sub.ToRequest()

	assert.Equal(t, "Priya Raman", req.FullName)
	assert.Equal(t, StatusPending, req.Status)
	assert.Nil(t, req.AlternateContactName)
	assert.Nil(t, req.PhoneSerial)
	require.NotNil(t, req.LaptopSerial)
	assert.Equal(t, "LT-4431", *req.LaptopSerial)
	assert.NotNil(t, req.Assets)
	assert.Empty(t, req.Assets)
}

func TestToRequest_KeepsAssetOrder(t *testing.T) {
	sub := OffboardingSubmission{
		Assets: []Asset{
			{"type": "monitor", "serial": "MN-1"},
			{"type": "laptop", "serial": "LT-2", "condition": "scratched"},
		},
	}

	req := sub.ToRequest()
	require.Len(t, req.Assets, 2)
	assert.Equal(t, "monitor", req.Assets[0]["type"])
	assert.Equal(t, "scratched", req.Assets[1]["condition"])
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.False(t, Status("Cancelled").IsValid())

	assert.True(t, StatusApproved.IsDecision())
	assert.True(t, StatusRejected.IsDecision())
	assert.False(t, StatusPending.IsDecision())
	assert.False(t, Status("approved").IsDecision())
}
