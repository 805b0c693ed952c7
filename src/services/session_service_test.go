// backend/src/services/session_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/dealparse/backend/src/models"
)

func TestSessionServicePutGet(t *testing.T) {
	svc := NewSessionService(cache.New(time.Minute, time.Minute))
	result := &models.ExtractionResult{
		Entities:        map[string]any{"PartyA": "ABC Bank"},
		ConfidenceScore: 0.17,
	}

	documentID := svc.Put(result)
	require.NotEmpty(t, documentID)

	got, found := svc.Get(documentID)
	require.True(t, found)
	assert.Equal(t, result, got)
}

func TestSessionServiceUnknownID(t *testing.T) {
	svc := NewSessionService(cache.New(time.Minute, time.Minute))

	_, found := svc.Get("does-not-exist")
	assert.False(t, found)
}

func TestSessionServiceDistinctIDs(t *testing.T) {
	svc := NewSessionService(cache.New(time.Minute, time.Minute))
	result := &models.ExtractionResult{Entities: map[string]any{}}

	first := svc.Put(result)
	second := svc.Put(result)
	assert.NotEqual(t, first, second)
}

func TestSessionServiceEntriesExpire(t *testing.T) {
	svc := NewSessionService(cache.New(20*time.Millisecond, time.Minute))

	documentID := svc.Put(&models.ExtractionResult{Entities: map[string]any{}})
	time.Sleep(50 * time.Millisecond)

	_, found := svc.Get(documentID)
	assert.False(t, found)
}
