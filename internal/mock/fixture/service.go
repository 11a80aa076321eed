// Package fixture owns the process-wide mock fixtures: one user, their domain
// profiles and upcoming events per profile. Fixtures are loaded from a
// key-value store, or generated and persisted when the store has none.
package fixture

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"aliascore/internal/domain/catalog"
	"aliascore/internal/domain/entity"
	domainerrors "aliascore/internal/domain/errors"
	"aliascore/internal/domain/repository"
	"aliascore/internal/errors"
	"aliascore/internal/mock/factory"
	"aliascore/internal/mock/seededrand"

	"golang.org/x/sync/singleflight"
)

// Storage keys of the persisted fixtures.
const (
	KeyUser    = "@mock:user"
	KeyDomains = "@mock:domains"
	KeyEvents  = "@mock:events"
)

// Keys lists every persisted key.
var Keys = []string{KeyUser, KeyDomains, KeyEvents}

// State is the lifecycle state of a Service.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Options configures fixture generation.
type Options struct {
	// Seed restarts the generator on every generation. Zero selects seededrand.DefaultSeed.
	Seed uint32
	// EventsPerDomain is clamped by factory.ClampEventCount.
	EventsPerDomain int
	// Clock stamps generated records. Nil selects time.Now.
	Clock factory.Clock
	// Catalog supplies domain names and icons. Nil selects catalog.Default().
	Catalog *catalog.Registry
}

// DomainEvents is the persisted shape of one profile's events.
type DomainEvents struct {
	DomainID string          `json:"domainId"`
	Events   []*entity.Event `json:"events"`
}

// Snapshot is a full copy of the fixtures.
type Snapshot struct {
	User    *entity.User            `json:"user"`
	Domains []*entity.DomainProfile `json:"domains"`
	Events  []DomainEvents          `json:"events"`
}

// Service holds the fixtures in memory. Memory is authoritative; the store is
// a write-behind copy, so store failures are logged and never surface.
type Service struct {
	store  repository.KeyValueStore
	logger *slog.Logger
	opts   Options

	group singleflight.Group
	// opMu serializes Initialize, Clear and Reset.
	opMu sync.Mutex

	mu      sync.RWMutex
	state   State
	user    *entity.User
	domains []*entity.DomainProfile
	events  map[string][]*entity.Event
}

// New creates an uninitialized Service.
func New(store repository.KeyValueStore, logger *slog.Logger, opts Options) *Service {
	if opts.Seed == 0 {
		opts.Seed = seededrand.DefaultSeed
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:  store,
		logger: logger.With(slog.String("component", "fixture")),
		opts:   opts,
		events: map[string][]*entity.Event{},
	}
}

// State reports the current lifecycle state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Initialize loads or generates the fixtures. It is idempotent, and concurrent
// callers share a single run.
func (s *Service) Initialize(ctx context.Context) error {
	if s.State() == StateReady {
		s.logger.DebugContext(ctx, "Fixtures already initialized")

		return nil
	}

	// Joined callers share the run, so it must outlive the first caller's cancellation.
	shared := context.WithoutCancel(ctx)
	_, err, _ := s.group.Do("initialize", func() (any, error) {
		return nil, s.initialize(shared)
	})

	return err
}

func (s *Service) initialize(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.state == StateReady {
		s.mu.Unlock()

		return nil
	}
	s.state = StateInitializing
	s.mu.Unlock()

	snap, ok := s.load(ctx)
	if !ok {
		generated, err := s.generate()
		if err != nil {
			s.setState(StateUninitialized)
			s.logger.ErrorContext(ctx, "Failed to generate fixtures", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrInitializationFailed, err.Error())
		}
		snap = generated
		s.persist(ctx, snap)
	}

	s.apply(snap)
	s.logger.InfoContext(ctx, "Fixtures initialized",
		slog.String("userId", snap.User.ID),
		slog.Int("domainCount", len(snap.Domains)),
		slog.Int("eventCount", countEvents(snap.Events)),
		slog.Bool("loaded", ok),
	)

	return nil
}

// User returns a copy of the fixture user.
func (s *Service) User() (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return nil, domainerrors.ErrNotInitialized
	}

	return s.user.Clone(), nil
}

// Domains returns copies of all domain profiles in generation order.
func (s *Service) Domains() ([]*entity.DomainProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return nil, domainerrors.ErrNotInitialized
	}

	return cloneProfiles(s.domains), nil
}

// Domain returns a copy of the profile with id.
func (s *Service) Domain(id string) (*entity.DomainProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return nil, domainerrors.ErrNotInitialized
	}

	for _, d := range s.domains {
		if d.ID == id {
			return d.Clone(), nil
		}
	}

	return nil, errors.Wrapf(domainerrors.ErrDomainNotFound, "domain %q", id)
}

// Events returns copies of the events of domainID. An unknown domain yields an empty slice.
func (s *Service) Events(domainID string) ([]*entity.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return nil, domainerrors.ErrNotInitialized
	}

	return cloneEvents(s.events[domainID]), nil
}

// AllEvents returns copies of every event, grouped in domain order.
func (s *Service) AllEvents() ([]*entity.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return nil, domainerrors.ErrNotInitialized
	}

	var all []*entity.Event
	for _, d := range s.domains {
		all = append(all, cloneEvents(s.events[d.ID])...)
	}
	if all == nil {
		all = []*entity.Event{}
	}

	return all, nil
}

// Snapshot returns a copy of all fixtures.
func (s *Service) Snapshot() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return Snapshot{}, domainerrors.ErrNotInitialized
	}

	return Snapshot{
		User:    s.user.Clone(),
		Domains: cloneProfiles(s.domains),
		Events:  s.snapshotEvents(),
	}, nil
}

// ReplaceUser swaps the fixture user for a copy of user and persists it.
func (s *Service) ReplaceUser(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, "user is required")
	}

	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()

		return domainerrors.ErrNotInitialized
	}
	s.user = user.Clone()
	s.mu.Unlock()

	s.write(ctx, KeyUser, user)

	return nil
}

// Clear drops the fixtures from memory and the store. The service becomes uninitialized.
func (s *Service) Clear(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.clear(ctx)
	s.logger.InfoContext(ctx, "Fixtures cleared")
}

// Reset clears the fixtures, then generates and persists a fresh set.
func (s *Service) Reset(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.clear(ctx)

	snap, err := s.generate()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to regenerate fixtures", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrInitializationFailed, err.Error())
	}
	s.persist(ctx, snap)
	s.apply(snap)
	s.logger.InfoContext(ctx, "Fixtures reset", slog.Int("domainCount", len(snap.Domains)))

	return nil
}

func (s *Service) clear(ctx context.Context) {
	s.mu.Lock()
	s.state = StateUninitialized
	s.user = nil
	s.domains = nil
	s.events = map[string][]*entity.Event{}
	s.mu.Unlock()

	for _, key := range Keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.ErrorContext(ctx, "Failed to delete fixture key", slog.String("key", key), slog.Any("error", err))
		}
	}
}

// generate builds a fresh snapshot from a generator restarted at the configured seed.
func (s *Service) generate() (Snapshot, error) {
	rng := seededrand.New(s.opts.Seed)
	users := factory.NewUserFactory(rng, s.opts.Clock)
	profiles := factory.NewDomainProfileFactory(rng, s.opts.Clock, s.opts.Catalog)
	events := factory.NewEventFactory(rng, s.opts.Clock)

	user := users.Generate(factory.UserOptions{})
	domains := profiles.DefaultProfiles(user.ID)

	ids := make([]string, 0, len(domains))
	for _, d := range domains {
		ids = append(ids, d.ID)
	}
	user, err := users.UpdateDomains(user, ids)
	if err != nil {
		return Snapshot{}, err
	}

	grouped := make([]DomainEvents, 0, len(domains))
	for _, d := range domains {
		grouped = append(grouped, DomainEvents{
			DomainID: d.ID,
			Events:   events.EventsForDomain(d.ID, s.opts.EventsPerDomain),
		})
	}

	return Snapshot{User: user, Domains: domains, Events: grouped}, nil
}

// load reads all three keys. Any miss, read failure or undecodable value reports false.
func (s *Service) load(ctx context.Context) (Snapshot, bool) {
	var snap Snapshot
	targets := map[string]any{
		KeyUser:    &snap.User,
		KeyDomains: &snap.Domains,
		KeyEvents:  &snap.Events,
	}

	for _, key := range Keys {
		raw, err := s.store.Get(ctx, key)
		if errors.Is(err, repository.ErrKeyNotFound) {
			return Snapshot{}, false
		}
		if err != nil {
			s.logger.WarnContext(ctx, "Failed to read fixtures", slog.String("key", key), slog.Any("error", err))

			return Snapshot{}, false
		}
		if err := json.Unmarshal([]byte(raw), targets[key]); err != nil {
			s.logger.WarnContext(ctx, "Discarding undecodable fixtures", slog.String("key", key), slog.Any("error", err))

			return Snapshot{}, false
		}
	}

	if snap.User == nil || snap.Domains == nil || snap.Events == nil {
		s.logger.WarnContext(ctx, "Discarding incomplete fixtures")

		return Snapshot{}, false
	}

	return snap, true
}

func (s *Service) persist(ctx context.Context, snap Snapshot) {
	s.write(ctx, KeyUser, snap.User)
	s.write(ctx, KeyDomains, snap.Domains)
	s.write(ctx, KeyEvents, snap.Events)
}

func (s *Service) write(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode fixtures", slog.String("key", key), slog.Any("error", err))

		return
	}

	if err := s.store.Set(ctx, key, string(raw)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist fixtures", slog.String("key", key), slog.Any("error", err))
	}
}

func (s *Service) apply(snap Snapshot) {
	events := make(map[string][]*entity.Event, len(snap.Events))
	for _, group := range snap.Events {
		events[group.DomainID] = cloneEvents(group.Events)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = snap.User.Clone()
	s.domains = cloneProfiles(snap.Domains)
	s.events = events
	s.state = StateReady
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}

// snapshotEvents copies the events in domain order. Callers hold s.mu.
func (s *Service) snapshotEvents() []DomainEvents {
	grouped := make([]DomainEvents, 0, len(s.domains))
	for _, d := range s.domains {
		if evs, ok := s.events[d.ID]; ok {
			grouped = append(grouped, DomainEvents{DomainID: d.ID, Events: cloneEvents(evs)})
		}
	}

	return grouped
}

func countEvents(groups []DomainEvents) int {
	n := 0
	for _, g := range groups {
		n += len(g.Events)
	}

	return n
}

func cloneProfiles(in []*entity.DomainProfile) []*entity.DomainProfile {
	out := make([]*entity.DomainProfile, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}

	return out
}

func cloneEvents(in []*entity.Event) []*entity.Event {
	out := make([]*entity.Event, 0, len(in))
	for _, e := range in {
		out = append(out, e.Clone())
	}

	return out
}
