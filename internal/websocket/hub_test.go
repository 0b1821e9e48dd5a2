package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterEnvelopeRoundTrip(t *testing.T) {
	event, err := json.Marshal(map[string]interface{}{
		"type": "RESEARCH_RUN_COMPLETED",
		"data": map[string]string{"run_id": "abc"},
	})
	require.NoError(t, err)

	envelope := clusterEnvelope(event)

	// The receiving side unwraps the same way subscribeToRedis does
	var received struct {
		Message json.RawMessage `json:"message"`
	}
	require.NoError(t, json.Unmarshal(envelope, &received))

	// The payload must still be the event JSON itself, not an encoded string
	assert.JSONEq(t, string(event), string(received.Message))

	var delivered struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(received.Message, &delivered))
	assert.Equal(t, "RESEARCH_RUN_COMPLETED", delivered.Type)
}
