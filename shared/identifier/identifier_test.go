package identifier_test

import (
	"encoding/json"
	"testing"

	"tickoff/config"
	"tickoff/shared/identifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSerial_Valid(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{id: "1", valid: true},
		{id: "9223372036854775807", valid: true},
		{id: "9223372036854775808", valid: false},
		{id: "0", valid: false},
		{id: "-4", valid: false},
		{id: "+4", valid: false},
		{id: "007", valid: false},
		{id: "", valid: false},
		{id: "12a", valid: false},
		{id: primitive.NewObjectID().Hex(), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.valid, identifier.Serial{}.Valid(tt.id))
		})
	}
}

func TestObjectID_Valid(t *testing.T) {
	assert.True(t, identifier.ObjectID{}.Valid(primitive.NewObjectID().Hex()))
	assert.False(t, identifier.ObjectID{}.Valid("42"))
	assert.False(t, identifier.ObjectID{}.Valid("zzzzzzzzzzzzzzzzzzzzzzzz"))
	assert.False(t, identifier.ObjectID{}.Valid(""))
}

func TestNew(t *testing.T) {
	cfg := &config.Config{}

	cfg.DB.Backend = config.BackendPostgres
	assert.IsType(t, identifier.Serial{}, identifier.New(cfg))

	cfg.DB.Backend = config.BackendMongo
	assert.IsType(t, identifier.ObjectID{}, identifier.New(cfg))
}

func TestSerialRoundTrip(t *testing.T) {
	n, ok := identifier.ParseSerial(identifier.FormatSerial(42))

	assert.True(t, ok)
	assert.Equal(t, int64(42), n)
}

func TestID_JSON(t *testing.T) {
	type payload struct {
		ID      identifier.ID `json:"id"`
		OwnerID identifier.ID `json:"owner_id"`
	}

	t.Run("accepts strings and numbers", func(t *testing.T) {
		var p payload

		require.NoError(t, json.Unmarshal([]byte(`{"id": 12, "owner_id": "65f1c0ffee0000000000beef"}`), &p))

		assert.Equal(t, identifier.ID("12"), p.ID)
		assert.Equal(t, identifier.ID("65f1c0ffee0000000000beef"), p.OwnerID)
	})

	t.Run("null leaves empty", func(t *testing.T) {
		var p payload

		require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &p))

		assert.Empty(t, p.ID)
	})

	t.Run("rejects fractions and objects", func(t *testing.T) {
		var p payload

		assert.ErrorIs(t, json.Unmarshal([]byte(`{"id": 1.5}`), &p), identifier.ErrInvalidID)
		assert.Error(t, json.Unmarshal([]byte(`{"id": {}}`), &p))
	})

	t.Run("always writes strings", func(t *testing.T) {
		out, err := json.Marshal(payload{ID: "7", OwnerID: "3"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"id": "7", "owner_id": "3"}`, string(out))
	})
}
