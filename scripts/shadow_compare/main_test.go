package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodiesEqualIgnoresVolatileFieldsAndOrder(t *testing.T) {
	goBody := unwrapEnvelope([]byte(`{"data":[
		{"id":"2f1c6b1e-5a43-4d7b-9a55-0c1b2f8e9d10","name":"Math","created_at":"2024-09-11T10:00:00Z"},
		{"id":"8a7d5e3c-1b2a-4c6d-8e9f-0a1b2c3d4e5f","name":"Portuguese"}
	]}`))
	legacyBody := []byte(`[{"id":2,"name":"Portuguese","createdAt":"x"},{"id":1,"name":"Math"}]`)

	assert.True(t, bodiesEqual(goBody, legacyBody))
	assert.False(t, bodiesEqual(goBody, []byte(`[{"name":"Math"}]`)))
}

func TestUnwrapEnvelopeKeepsErrorBodies(t *testing.T) {
	body := []byte(`{"error":{"code":"NOT_FOUND"}}`)
	assert.Equal(t, body, unwrapEnvelope(body))
}
