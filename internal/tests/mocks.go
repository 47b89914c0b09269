package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository. It enforces
// email uniqueness in Create the way the database constraint does.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	nextID int64

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
	GetError    error

	// ExistsOverride, when set, replaces the ExistsByEmail answer. It lets
	// tests simulate a concurrent signup slipping past the fast-path check.
	ExistsOverride func(email string) (bool, bool)
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository, assigning an ID if missing.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	}
	m.users[user.Email] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	copy := *user
	m.users[user.Email] = &copy
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *u
	return &copy, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsOverride != nil {
		if exists, ok := m.ExistsOverride(email); ok {
			return exists, nil
		}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[email]
	return ok, nil
}

// GetUser returns the stored user for test assertions.
func (m *MockUserRepository) GetUser(email string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[email]
}

// Count returns the number of stored users.
func (m *MockUserRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository.
type MockRideRepository struct {
	mu     sync.RWMutex
	rides  []*domain.Ride
	nextID int64

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
	ListError   error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{}
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ride.ID = m.nextID
	copy := *ride
	m.rides = append(m.rides, &copy)
	return nil
}

func (m *MockRideRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Ride, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Ride, 0)
	for _, r := range m.rides {
		if r.UserID == userID {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DateTime.Equal(result[j].DateTime) {
			return result[i].ID > result[j].ID
		}
		return result[i].DateTime.After(result[j].DateTime)
	})
	return result, nil
}

// All returns every stored ride for test assertions.
func (m *MockRideRepository) All() []*domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Ride(nil), m.rides...)
}

// ──────────────────────────────────────────────
// MOCK SIGNUP LOCK
// ──────────────────────────────────────────────

// MockSignupLock is an in-memory SignupLocker.
type MockSignupLock struct {
	mu   sync.Mutex
	held map[string]bool

	AcquireError error
	ReleaseCount int32
}

// NewMockSignupLock creates a new mock signup lock.
func NewMockSignupLock() *MockSignupLock {
	return &MockSignupLock{held: make(map[string]bool)}
}

func (m *MockSignupLock) AcquireSignupLock(ctx context.Context, email string, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[email] {
		return false, nil
	}
	m.held[email] = true
	return true, nil
}

func (m *MockSignupLock) ReleaseSignupLock(ctx context.Context, email string) error {
	atomic.AddInt32(&m.ReleaseCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, email)
	return nil
}

// Hold marks the lock for email as held by someone else.
func (m *MockSignupLock) Hold(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[email] = true
}

// ──────────────────────────────────────────────
// MOCK USER CACHE
// ──────────────────────────────────────────────

// MockUserCache is an in-memory UserCache.
type MockUserCache struct {
	mu    sync.Mutex
	users map[string]domain.User

	GetError error
	GetCalls int32
	SetCalls int32
}

// NewMockUserCache creates a new mock user cache.
func NewMockUserCache() *MockUserCache {
	return &MockUserCache{users: make(map[string]domain.User)}
}

func (m *MockUserCache) GetUser(ctx context.Context, email string) (*domain.User, error) {
	atomic.AddInt32(&m.GetCalls, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MockUserCache) SetUser(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.SetCalls, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = *user
	return nil
}

// Peek returns the cached user for test assertions.
func (m *MockUserCache) Peek(email string) (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	return u, ok
}
