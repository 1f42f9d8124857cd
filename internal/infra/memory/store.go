package memory

import (
	"sync"

	"github.com/BruksfildServices01/salon-queue/internal/domain/offer"
	"github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/domain/salon"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/domain/visit"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

// Store keeps every record in process memory. It backs STORE_DRIVER=memory
// and the test suites.
//
// mu guards the maps. salonLocks serializes the multi-step queue mutations of
// one salon (read count, then insert; transition, then re-pack).
type Store struct {
	mu sync.RWMutex

	users    map[string]*models.User
	salons   map[string]*models.Salon
	services map[string]*models.Service
	entries  map[string]*models.QueueEntry
	offers   map[string]*models.Offer
	visits   map[string]*models.Visit
	audit    []models.AuditLog

	// insertion order, used to break CreatedAt ties
	seq   int64
	order map[string]int64

	salonLocks *keyedMutex
}

func New() *Store {
	return &Store{
		users:      make(map[string]*models.User),
		salons:     make(map[string]*models.Salon),
		services:   make(map[string]*models.Service),
		entries:    make(map[string]*models.QueueEntry),
		offers:     make(map[string]*models.Offer),
		visits:     make(map[string]*models.Visit),
		order:      make(map[string]int64),
		salonLocks: newKeyedMutex(),
	}
}

// track must be called with mu held.
func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

// Compile-time checks
var (
	_ queue.Store      = (*Store)(nil)
	_ salon.Repository = (*Store)(nil)
	_ offer.Repository = (*Store)(nil)
	_ user.Repository  = (*Store)(nil)
	_ visit.Repository = (*Store)(nil)
)
