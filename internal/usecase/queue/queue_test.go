package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	"github.com/BruksfildServices01/salon-queue/internal/clock"
	domain "github.com/BruksfildServices01/salon-queue/internal/domain/queue"
	"github.com/BruksfildServices01/salon-queue/internal/domain/user"
	"github.com/BruksfildServices01/salon-queue/internal/httperr"
	"github.com/BruksfildServices01/salon-queue/internal/infra/cache"
	"github.com/BruksfildServices01/salon-queue/internal/infra/memory"
	"github.com/BruksfildServices01/salon-queue/internal/models"
	"github.com/BruksfildServices01/salon-queue/internal/notify"
)

type recordingPublisher struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, n notify.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, n)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// countingCache records invalidations on top of the no-op cache.
type countingCache struct {
	cache.Nop
	mu          sync.Mutex
	invalidated map[string]int
}

func (c *countingCache) Invalidate(ctx context.Context, salonID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.invalidated == nil {
		c.invalidated = make(map[string]int)
	}
	c.invalidated[salonID]++
}

type env struct {
	store     *memory.Store
	clock     *clock.Fixed
	publisher *recordingPublisher
	cache     *countingCache

	join    *JoinQueue
	advance *AdvanceEntry
	remove  *RemoveEntry
	status  *GetQueueStatus
	list    *ListQueue
	expire  *ExpireStale

	owner    user.Actor
	salon    *models.Salon
	haircut  *models.Service
	coloring *models.Service
	userA    *models.User
	userB    *models.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	clk := clock.NewFixed(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	pub := &recordingPublisher{}
	qc := &countingCache{}
	disp := audit.NewDispatcher(audit.New(store))
	t.Cleanup(func() { disp.Close(context.Background()) })

	ownerUser := &models.User{Email: "owner@test.dev", FirstName: "Olga", IsAdmin: true}
	require.NoError(t, store.CreateUser(ctx, ownerUser))

	sl := &models.Salon{Name: "Glow Studio", Location: "Main St", OwnerID: &ownerUser.ID}
	require.NoError(t, store.CreateSalon(ctx, sl))

	haircut := &models.Service{SalonID: sl.ID, Name: "Haircut", Price: 2500, Duration: 20}
	require.NoError(t, store.CreateService(ctx, haircut))
	coloring := &models.Service{SalonID: sl.ID, Name: "Color", Price: 6000, Duration: 60}
	require.NoError(t, store.CreateService(ctx, coloring))

	userA := &models.User{Email: "a@test.dev", FirstName: "Ana", LastName: "Silva", Phone: "+5511911110000"}
	require.NoError(t, store.CreateUser(ctx, userA))
	userB := &models.User{Email: "b@test.dev", FirstName: "Bruno"}
	require.NoError(t, store.CreateUser(ctx, userB))

	return &env{
		store:     store,
		clock:     clk,
		publisher: pub,
		cache:     qc,

		join:    NewJoinQueue(store, store, qc, disp, clk),
		advance: NewAdvanceEntry(store, store, store, pub, qc, disp, clk),
		remove:  NewRemoveEntry(store, store, qc, disp),
		status:  NewGetQueueStatus(store, store),
		list:    NewListQueue(store, store, store, qc),
		expire:  NewExpireStale(store, qc, disp, clk, 12*time.Hour),

		owner:    user.Actor{ID: ownerUser.ID, IsAdmin: true},
		salon:    sl,
		haircut:  haircut,
		coloring: coloring,
		userA:    userA,
		userB:    userB,
	}
}

func (e *env) joinAs(t *testing.T, u *models.User, serviceID string) *models.QueueEntry {
	t.Helper()
	var uid *string
	if u != nil {
		uid = &u.ID
	}
	entry, err := e.join.Execute(context.Background(), domain.JoinInput{
		SalonID:   e.salon.ID,
		UserID:    uid,
		ServiceID: serviceID,
	})
	require.NoError(t, err)
	e.clock.Advance(time.Minute)
	return entry
}

// ======================================================
// Join
// ======================================================

func TestJoinAssignsPositionsInOrder(t *testing.T) {
	e := newEnv(t)

	a := e.joinAs(t, e.userA, e.haircut.ID)
	b := e.joinAs(t, e.userB, e.haircut.ID)

	assert.Equal(t, 1, a.Position)
	assert.Equal(t, string(domain.StatusWaiting), a.Status)
	assert.Equal(t, 2, b.Position)
	assert.Equal(t, 2, e.cache.invalidated[e.salon.ID])
}

func TestJoinTwiceWhileWaitingIsDuplicate(t *testing.T) {
	e := newEnv(t)
	e.joinAs(t, e.userA, e.haircut.ID)

	_, err := e.join.Execute(context.Background(), domain.JoinInput{
		SalonID:   e.salon.ID,
		UserID:    &e.userA.ID,
		ServiceID: e.haircut.ID,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeDuplicateEntry))
}

func TestJoinResolvesDefaultService(t *testing.T) {
	e := newEnv(t)

	for _, sid := range []string{"", domain.DefaultServiceSentinel} {
		entry, err := e.join.Execute(context.Background(), domain.JoinInput{SalonID: e.salon.ID, ServiceID: sid})
		require.NoError(t, err)
		assert.Equal(t, e.haircut.ID, entry.ServiceID)
	}
}

func TestJoinRejectsBadReferences(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	other := &models.Salon{Name: "Other", Location: "Elsewhere"}
	require.NoError(t, e.store.CreateSalon(ctx, other))
	foreign := &models.Service{SalonID: other.ID, Name: "Shave", Price: 1000, Duration: 10}
	require.NoError(t, e.store.CreateService(ctx, foreign))

	_, err := e.join.Execute(ctx, domain.JoinInput{SalonID: "  "})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))

	_, err = e.join.Execute(ctx, domain.JoinInput{SalonID: "missing"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSalonNotFound))

	_, err = e.join.Execute(ctx, domain.JoinInput{SalonID: e.salon.ID, ServiceID: foreign.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))

	// a salon without services cannot pick a default
	empty := &models.Salon{Name: "Empty", Location: "Nowhere"}
	require.NoError(t, e.store.CreateSalon(ctx, empty))
	_, err = e.join.Execute(ctx, domain.JoinInput{SalonID: empty.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
}

func TestConcurrentJoinsOnEmptyQueue(t *testing.T) {
	e := newEnv(t)

	var wg sync.WaitGroup
	results := make([]*models.QueueEntry, 2)
	for i, u := range []*models.User{e.userA, e.userB} {
		wg.Add(1)
		go func(i int, u *models.User) {
			defer wg.Done()
			entry, err := e.join.Execute(context.Background(), domain.JoinInput{
				SalonID: e.salon.ID, UserID: &u.ID, ServiceID: e.haircut.ID,
			})
			if err == nil {
				results[i] = entry
			}
		}(i, u)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	require.NotNil(t, results[1])
	assert.ElementsMatch(t, []int{1, 2}, []int{results[0].Position, results[1].Position})
}

// ======================================================
// Advance
// ======================================================

func TestCallThenCompleteRecordsVisit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.joinAs(t, e.userA, e.haircut.ID)
	b := e.joinAs(t, e.userB, e.haircut.ID)

	called, err := e.advance.Execute(ctx, AdvanceInput{EntryID: a.ID, Target: domain.StatusInProgress, Actor: e.owner})
	require.NoError(t, err)
	require.NotNil(t, called.Entry.CalledAt)
	require.NotNil(t, called.Notification)
	assert.Equal(t, e.userA.Phone, called.Notification.Phone)
	assert.Equal(t, "Hi Ana, it's your turn at Glow Studio. Please come in!", called.Notification.Message)
	assert.Nil(t, called.Visit)
	require.Len(t, e.publisher.sent, 1)

	// the remaining customer moves up
	gotB, err := e.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotB.Position)

	done, err := e.advance.Execute(ctx, AdvanceInput{EntryID: a.ID, Target: domain.StatusCompleted, Actor: e.owner})
	require.NoError(t, err)
	require.NotNil(t, done.Visit)
	assert.Equal(t, e.haircut.Price, done.Visit.TotalAmount)
	assert.Equal(t, 10, done.Visit.PointsEarned)
	assert.Equal(t, a.ID, done.Visit.QueueID)
	assert.Equal(t, e.salon.ID, done.Visit.SalonID)
	assert.Equal(t, e.haircut.ID, done.Visit.ServiceID)
	assert.Nil(t, done.Notification)

	u, err := e.store.GetUser(ctx, e.userA.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, u.LoyaltyPoints)
}

func TestNoShowCreatesNoVisit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.joinAs(t, e.userA, e.haircut.ID)

	res, err := e.advance.Execute(ctx, AdvanceInput{EntryID: a.ID, Target: domain.StatusNoShow, Actor: e.owner})
	require.NoError(t, err)
	assert.Nil(t, res.Visit)
	require.NotNil(t, res.Entry.CompletedAt)

	visits, err := e.store.ListVisitsByUser(ctx, e.userA.ID)
	require.NoError(t, err)
	assert.Empty(t, visits)

	u, err := e.store.GetUser(ctx, e.userA.ID)
	require.NoError(t, err)
	assert.Zero(t, u.LoyaltyPoints)
}

func TestCallSucceedsWhenPublishFails(t *testing.T) {
	e := newEnv(t)
	e.publisher.err = errors.New("broker down")
	a := e.joinAs(t, e.userA, e.haircut.ID)

	res, err := e.advance.Execute(context.Background(), AdvanceInput{EntryID: a.ID, Target: domain.StatusInProgress, Actor: e.owner})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), res.Entry.Status)
}

func TestCallAnonymousEntryUsesFallbackGreeting(t *testing.T) {
	e := newEnv(t)
	a := e.joinAs(t, nil, e.haircut.ID)

	res, err := e.advance.Execute(context.Background(), AdvanceInput{EntryID: a.ID, Target: domain.StatusInProgress, Actor: e.owner})
	require.NoError(t, err)
	require.NotNil(t, res.Notification)
	assert.Equal(t, "Hi Customer, it's your turn at Glow Studio. Please come in!", res.Notification.Message)
	assert.Empty(t, res.Notification.Phone)
}

func TestAdvanceRequiresSalonOwner(t *testing.T) {
	e := newEnv(t)
	a := e.joinAs(t, e.userA, e.haircut.ID)
	ctx := context.Background()

	_, err := e.advance.Execute(ctx, AdvanceInput{EntryID: a.ID, Target: domain.StatusInProgress, Actor: user.Actor{ID: e.userB.ID}})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = e.advance.Execute(ctx, AdvanceInput{EntryID: "missing", Target: domain.StatusInProgress, Actor: e.owner})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeQueueEntryNotFound))
}

func TestAdvanceAfterTerminalIsInvalidTransition(t *testing.T) {
	e := newEnv(t)
	a := e.joinAs(t, e.userA, e.haircut.ID)
	ctx := context.Background()

	_, err := e.advance.Execute(ctx, AdvanceInput{EntryID: a.ID, Target: domain.StatusNoShow, Actor: e.owner})
	require.NoError(t, err)

	_, err = e.advance.Execute(ctx, AdvanceInput{EntryID: a.ID, Target: domain.StatusCompleted, Actor: e.owner})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

// ======================================================
// Remove / status / list / expire
// ======================================================

func TestRemoveByCustomerThenAgain(t *testing.T) {
	e := newEnv(t)
	a := e.joinAs(t, e.userA, e.haircut.ID)
	b := e.joinAs(t, e.userB, e.haircut.ID)
	ctx := context.Background()

	require.NoError(t, e.remove.Execute(ctx, a.ID, user.Actor{ID: e.userA.ID}))

	gotB, err := e.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotB.Position)

	err = e.remove.Execute(ctx, a.ID, user.Actor{ID: e.userA.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeQueueEntryNotFound))
}

func TestRemoveSomeoneElsesEntryIsForbidden(t *testing.T) {
	e := newEnv(t)
	a := e.joinAs(t, e.userA, e.haircut.ID)

	err := e.remove.Execute(context.Background(), a.ID, user.Actor{ID: e.userB.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	require.NoError(t, e.remove.Execute(context.Background(), a.ID, e.owner))
}

func TestQueueStatusEstimatesWait(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.joinAs(t, e.userA, e.haircut.ID)
	e.joinAs(t, nil, e.haircut.ID)
	third := &models.User{Email: "c@test.dev", FirstName: "Caio"}
	require.NoError(t, e.store.CreateUser(ctx, third))
	e.joinAs(t, third, e.haircut.ID)

	got, err := e.status.Execute(ctx, third.ID, e.salon.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Position)
	assert.Equal(t, 40, got.EstimatedWaitMinutes)
	assert.False(t, got.IsNext)

	first, err := e.status.Execute(ctx, e.userA.ID, e.salon.ID)
	require.NoError(t, err)
	assert.True(t, first.IsNext)

	none, err := e.status.Execute(ctx, e.userB.ID, e.salon.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = e.status.Execute(ctx, e.userB.ID, "")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
}

func TestListQueueDecoratesEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.joinAs(t, e.userA, e.haircut.ID)
	e.joinAs(t, nil, e.coloring.ID)
	e.joinAs(t, e.userB, e.coloring.ID)

	_, err := e.advance.Execute(ctx, AdvanceInput{EntryID: a.ID, Target: domain.StatusInProgress, Actor: e.owner})
	require.NoError(t, err)

	rows, err := e.list.Execute(ctx, e.salon.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Ana Silva", rows[0].UserName)
	assert.Equal(t, "Haircut", rows[0].ServiceName)
	assert.Nil(t, rows[0].EstimatedWaitMinutes)

	assert.Equal(t, unknownUserName, rows[1].UserName)
	require.NotNil(t, rows[1].IsNext)
	assert.True(t, *rows[1].IsNext)

	assert.Equal(t, "Bruno", rows[2].UserName)
	require.NotNil(t, rows[2].EstimatedWaitMinutes)
	assert.Equal(t, 60, *rows[2].EstimatedWaitMinutes)
}

// versionedCache keeps snapshots in memory with the same version rules as Redis.
type versionedCache struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	versions  map[string]int64
}

func newVersionedCache() *versionedCache {
	return &versionedCache{snapshots: map[string][]byte{}, versions: map[string]int64{}}
}

func (c *versionedCache) Get(_ context.Context, salonID string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.snapshots[salonID]
	return b, ok
}

func (c *versionedCache) Version(_ context.Context, salonID string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[salonID], true
}

func (c *versionedCache) Set(_ context.Context, salonID string, version int64, snapshot []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[salonID] == version {
		c.snapshots[salonID] = snapshot
	}
}

func (c *versionedCache) Invalidate(_ context.Context, salonID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[salonID]++
	delete(c.snapshots, salonID)
}

// racingStore runs during once, right after the board is read.
type racingStore struct {
	domain.Store
	during func()
}

func (s *racingStore) ListBySalon(ctx context.Context, salonID string) ([]models.QueueEntry, error) {
	list, err := s.Store.ListBySalon(ctx, salonID)
	if s.during != nil {
		s.during()
		s.during = nil
	}
	return list, err
}

func TestListQueueDoesNotCacheBoardReadBeforeAMutation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.joinAs(t, e.userA, e.haircut.ID)

	qc := newVersionedCache()
	disp := audit.NewDispatcher(audit.New(e.store))
	t.Cleanup(func() { disp.Close(context.Background()) })
	join := NewJoinQueue(e.store, e.store, qc, disp, e.clock)
	store := &racingStore{Store: e.store}
	list := NewListQueue(store, e.store, e.store, qc)

	store.during = func() {
		_, err := join.Execute(ctx, domain.JoinInput{SalonID: e.salon.ID, UserID: &e.userB.ID, ServiceID: e.haircut.ID})
		require.NoError(t, err)
	}

	rows, err := list.Execute(ctx, e.salon.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, cached := qc.Get(ctx, e.salon.ID)
	assert.False(t, cached, "snapshot read before the join must not be cached")

	rows, err = list.Execute(ctx, e.salon.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, cached = qc.Get(ctx, e.salon.ID)
	assert.True(t, cached)

	rows, err = list.Execute(ctx, e.salon.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExpireStaleMarksOldEntriesNoShow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.joinAs(t, e.userA, e.haircut.ID)

	e.clock.Advance(11 * time.Hour)
	b := e.joinAs(t, e.userB, e.haircut.ID)
	e.clock.Advance(2 * time.Hour)

	n, err := e.expire.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	gotA, err := e.store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), gotA.Status)

	gotB, err := e.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotB.Position)

	visits, err := e.store.ListVisitsByUser(ctx, e.userA.ID)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestStartSweeperRejectsBadSchedule(t *testing.T) {
	e := newEnv(t)

	_, err := StartSweeper("not a schedule", e.expire)
	assert.Error(t, err)

	c, err := StartSweeper("@every 1h", e.expire)
	require.NoError(t, err)
	c.Stop()
}
