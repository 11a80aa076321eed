package fixture

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"aliascore/internal/domain/entity"
	domainerrors "aliascore/internal/domain/errors"
	"aliascore/internal/domain/repository"
	"aliascore/internal/errors"
	"aliascore/internal/infra/kvstore"
	mockRepo "aliascore/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{Clock: func() time.Time { return fixedNow }}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingStore counts writes of the user key so tests can observe generations.
type countingStore struct {
	repository.KeyValueStore

	mu         sync.Mutex
	userWrites int
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	if key == KeyUser {
		s.mu.Lock()
		s.userWrites++
		s.mu.Unlock()
	}

	return s.KeyValueStore.Set(ctx, key, value)
}

func (s *countingStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.userWrites
}

func newTestService(t *testing.T) (*Service, *countingStore) {
	t.Helper()

	store := &countingStore{KeyValueStore: kvstore.NewMemory()}

	return New(store, discardLogger(), testOptions()), store
}

func TestService_AccessorsBeforeInitialize(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, StateUninitialized, svc.State())

	_, err := svc.User()
	assert.ErrorIs(t, err, domainerrors.ErrNotInitialized)
	_, err = svc.Domains()
	assert.ErrorIs(t, err, domainerrors.ErrNotInitialized)
	_, err = svc.Domain("mock-chess")
	assert.ErrorIs(t, err, domainerrors.ErrNotInitialized)
	_, err = svc.Events("mock-chess")
	assert.ErrorIs(t, err, domainerrors.ErrNotInitialized)
	_, err = svc.AllEvents()
	assert.ErrorIs(t, err, domainerrors.ErrNotInitialized)
	_, err = svc.Snapshot()
	assert.ErrorIs(t, err, domainerrors.ErrNotInitialized)
	assert.ErrorIs(t, svc.ReplaceUser(context.Background(), &entity.User{}), domainerrors.ErrNotInitialized)
}

func TestService_InitializeGeneratesConsistentFixtures(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Initialize(ctx))
	assert.Equal(t, StateReady, svc.State())
	assert.Equal(t, 1, store.writes())

	user, err := svc.User()
	require.NoError(t, err)
	assert.Equal(t, "mock-user-12345", user.ID)
	assert.Equal(t, []string{"mock-chess", "mock-valorant"}, user.Domains)

	domains, err := svc.Domains()
	require.NoError(t, err)
	require.Len(t, domains, 2)
	for _, d := range domains {
		assert.Equal(t, user.ID, d.UserID)

		events, err := svc.Events(d.ID)
		require.NoError(t, err)
		assert.Len(t, events, 8)
		for _, ev := range events {
			assert.Equal(t, d.ID, ev.DomainKey)
		}
	}

	all, err := svc.AllEvents()
	require.NoError(t, err)
	assert.Len(t, all, 16)
	assert.Equal(t, "mock-chess", all[0].DomainKey)
	assert.Equal(t, "mock-valorant", all[15].DomainKey)

	for _, key := range Keys {
		_, err := store.Get(ctx, key)
		assert.NoError(t, err, "key %s must be persisted", key)
	}
}

func TestService_InitializeIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Initialize(ctx))
	require.NoError(t, svc.Initialize(ctx))

	assert.Equal(t, 1, store.writes())
}

func TestService_ConcurrentInitializeGeneratesOnce(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = svc.Initialize(ctx)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, store.writes())
	assert.Equal(t, StateReady, svc.State())
}

func TestService_InitializeLoadsPersistedFixtures(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{KeyValueStore: kvstore.NewMemory()}

	first := New(store, discardLogger(), testOptions())
	require.NoError(t, first.Initialize(ctx))
	want, err := first.Snapshot()
	require.NoError(t, err)

	second := New(store, discardLogger(), Options{Clock: func() time.Time { return fixedNow.Add(48 * time.Hour) }})
	require.NoError(t, second.Initialize(ctx))

	got, err := second.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, store.writes(), "loading must not regenerate")
}

func TestService_InitializeIgnoresCallerCancellation(t *testing.T) {
	sqlite, err := kvstore.OpenSQLite(t.TempDir() + "/fixtures.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	store := &countingStore{KeyValueStore: sqlite}

	first := New(store, discardLogger(), testOptions())
	require.NoError(t, first.Initialize(context.Background()))
	want, err := first.Snapshot()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	second := New(store, discardLogger(), Options{Clock: func() time.Time { return fixedNow.Add(48 * time.Hour) }})
	require.NoError(t, second.Initialize(ctx))

	got, err := second.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, want, got, "stored fixtures must be loaded, not regenerated")
	assert.Equal(t, 1, store.writes())
}

func TestService_InitializeRegeneratesCorruptFixtures(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{KeyValueStore: kvstore.NewMemory()}
	require.NoError(t, store.KeyValueStore.Set(ctx, KeyUser, "{not json"))
	require.NoError(t, store.KeyValueStore.Set(ctx, KeyDomains, "[]"))
	require.NoError(t, store.KeyValueStore.Set(ctx, KeyEvents, "[]"))

	svc := New(store, discardLogger(), testOptions())
	require.NoError(t, svc.Initialize(ctx))

	user, err := svc.User()
	require.NoError(t, err)
	assert.Equal(t, "mock-user-12345", user.ID)
	assert.Equal(t, 1, store.writes())

	raw, err := store.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(raw)))
}

func TestService_InitializeRegeneratesWhenAnyKeyMissing(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{KeyValueStore: kvstore.NewMemory()}

	first := New(store, discardLogger(), testOptions())
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, store.Delete(ctx, KeyEvents))

	second := New(store, discardLogger(), testOptions())
	require.NoError(t, second.Initialize(ctx))

	assert.Equal(t, 2, store.writes())
	_, err := store.Get(ctx, KeyEvents)
	assert.NoError(t, err)
}

func TestService_StoreFailuresAreAbsorbed(t *testing.T) {
	ctx := context.Background()
	store := mockRepo.NewMockKeyValueStore(t)
	boom := errors.New("disk full")

	store.EXPECT().Get(mock.Anything, KeyUser).Return("", boom).Once()
	store.EXPECT().Set(mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(boom).Times(3)

	svc := New(store, discardLogger(), testOptions())
	require.NoError(t, svc.Initialize(ctx))

	user, err := svc.User()
	require.NoError(t, err)
	assert.Equal(t, "mock-user-12345", user.ID)

	store.EXPECT().Delete(mock.Anything, mock.AnythingOfType("string")).Return(boom).Times(3)
	svc.Clear(ctx)
	assert.Equal(t, StateUninitialized, svc.State())
}

func TestService_DomainLookups(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Initialize(context.Background()))

	chess, err := svc.Domain("mock-chess")
	require.NoError(t, err)
	assert.Equal(t, "ChessMaster2000", chess.PlatformUsername)

	_, err = svc.Domain("mock-unknown")
	assert.ErrorIs(t, err, domainerrors.ErrDomainNotFound)

	events, err := svc.Events("mock-unknown")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestService_ReturnsCopies(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Initialize(context.Background()))

	user, err := svc.User()
	require.NoError(t, err)
	user.DisplayName = "mutated"
	user.Domains[0] = "mutated"

	again, err := svc.User()
	require.NoError(t, err)
	assert.Equal(t, "Test User", again.DisplayName)
	assert.Equal(t, "mock-chess", again.Domains[0])

	events, err := svc.Events("mock-chess")
	require.NoError(t, err)
	events[0].Name = "mutated"

	fresh, err := svc.Events("mock-chess")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", fresh[0].Name)
}

func TestService_ReplaceUserPersists(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	require.NoError(t, svc.Initialize(ctx))

	user, err := svc.User()
	require.NoError(t, err)
	require.NoError(t, svc.ReplaceUser(ctx, user.WithDisplayName("New Name", fixedNow)))

	got, err := svc.User()
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.DisplayName)

	raw, err := store.Get(ctx, KeyUser)
	require.NoError(t, err)
	var persisted entity.User
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, "New Name", persisted.DisplayName)

	assert.ErrorIs(t, svc.ReplaceUser(ctx, nil), domainerrors.ErrValidationFailed)
}

func TestService_ClearWipesMemoryAndStore(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	require.NoError(t, svc.Initialize(ctx))

	svc.Clear(ctx)

	assert.Equal(t, StateUninitialized, svc.State())
	_, err := svc.User()
	assert.ErrorIs(t, err, domainerrors.ErrNotInitialized)
	for _, key := range Keys {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, repository.ErrKeyNotFound)
	}

	require.NoError(t, svc.Initialize(ctx))
	assert.Equal(t, 2, store.writes())
}

func TestService_ResetRegeneratesSameFixtures(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	require.NoError(t, svc.Initialize(ctx))

	user, err := svc.User()
	require.NoError(t, err)
	require.NoError(t, svc.ReplaceUser(ctx, user.WithDisplayName("Changed", fixedNow)))
	before, err := svc.AllEvents()
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))

	assert.Equal(t, StateReady, svc.State())
	after, err := svc.AllEvents()
	require.NoError(t, err)
	assert.Equal(t, before, after, "same seed must yield the same events")

	user, err = svc.User()
	require.NoError(t, err)
	assert.Equal(t, "Test User", user.DisplayName)
	assert.Equal(t, 3, store.writes(), "initialize, replace and reset each write the user")
}

func TestService_EventsPerDomainIsClamped(t *testing.T) {
	store := kvstore.NewMemory()
	svc := New(store, discardLogger(), Options{EventsPerDomain: 50, Clock: testOptions().Clock})
	require.NoError(t, svc.Initialize(context.Background()))

	events, err := svc.Events("mock-valorant")
	require.NoError(t, err)
	assert.Len(t, events, 10)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "initializing", StateInitializing.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "unknown", State(9).String())
}
