// backend/src/services/session_service.go
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/username/dealparse/backend/src/models"
)

const (
	DefaultSessionTTL      = 1 * time.Hour
	SessionCleanupInterval = 10 * time.Minute
)

// sessionServiceImpl is a keyed store for extraction results with a
// bounded lifetime. It replaces ambient global registries: the cache is
// created at startup and injected into whoever needs it.
type sessionServiceImpl struct {
	store *cache.Cache
}

// NewSessionService wraps a go-cache instance as a document session
// store. The cache's default expiration governs entry lifetime.
func NewSessionService(store *cache.Cache) SessionService {
	return &sessionServiceImpl{store: store}
}

func (s *sessionServiceImpl) Put(result *models.ExtractionResult) string {
	documentID := uuid.New().String()
	s.store.Set(documentID, result, cache.DefaultExpiration)
	return documentID
}

func (s *sessionServiceImpl) Get(documentID string) (*models.ExtractionResult, bool) {
	v, found := s.store.Get(documentID)
	if !found {
		return nil, false
	}
	result, ok := v.(*models.ExtractionResult)
	return result, ok
}
