package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "givebridge/pkg/domain-errors"
)

// TestParseUUID_Invariants covers the parsing invariant for typed ids:
// ids must be valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseAccountID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseAccountID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseAccountID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseAccountID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, AccountID(valid), id)
		assert.Equal(t, valid.String(), id.String())
	})
}

func TestParseID_HostileInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE accounts;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errAccount := ParseAccountID(tt.input)
			_, errDonation := ParseDonationID(tt.input)
			_, errSession := ParseSessionID(tt.input)
			if tt.wantErr {
				require.Error(t, errAccount)
				require.Error(t, errDonation)
				require.Error(t, errSession)
				return
			}
			require.NoError(t, errAccount)
			require.NoError(t, errDonation)
			require.NoError(t, errSession)
		})
	}
}

func TestParseProjectID(t *testing.T) {
	t.Run("trims and accepts catalog ids", func(t *testing.T) {
		id, err := ParseProjectID("  proj-agasalho-2024 ")
		require.NoError(t, err)
		assert.Equal(t, ProjectID("proj-agasalho-2024"), id)
	})

	t.Run("rejects blank", func(t *testing.T) {
		_, err := ParseProjectID("  ")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects control characters", func(t *testing.T) {
		_, err := ParseProjectID("proj\x00x")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects oversized ids", func(t *testing.T) {
		_, err := ParseProjectID(strings.Repeat("p", maxProjectIDLength+1))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestTypeDistinction(t *testing.T) {
	accountID := NewAccountID()
	donationID := NewDonationID()

	// var _ AccountID = donationID would not compile.
	assert.NotEqual(t, uuid.UUID(accountID), uuid.UUID(donationID))
	assert.False(t, accountID.IsNil())
	assert.True(t, AccountID{}.IsNil())
}

func TestIDsMarshalAsCanonicalText(t *testing.T) {
	accountID := NewAccountID()
	payload, err := json.Marshal(map[string]AccountID{"account_id": accountID})
	require.NoError(t, err)
	assert.JSONEq(t, `{"account_id":"`+accountID.String()+`"}`, string(payload))

	var decoded map[string]AccountID
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, accountID, decoded["account_id"])

	var bad SessionID
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &bad))
}
