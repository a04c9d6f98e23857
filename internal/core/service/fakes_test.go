package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/constellation/social-api/internal/core/domain"
)

var testLog = zerolog.Nop()

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Rewards = append([]domain.Reward(nil), u.Rewards...)
	c.Moderation = append([]domain.ModerationEvent(nil), u.Moderation...)
	return &c
}

// memUsers is an in-memory UserRepository honouring the role guard of Apply.
type memUsers struct {
	mu     sync.Mutex
	seq    int
	byID   map[string]*domain.User
	order  []string
	applys int

	// beforeApply runs once per Apply call, before the guard is checked.
	beforeApply func(r *memUsers, id string)
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[string]*domain.User)}
}

func (r *memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.seq)
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return cloneUser(c), nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) List(_ context.Context, page, limit int) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Newest first.
	ids := make([]string, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		ids = append(ids, r.order[i])
	}
	start := (page - 1) * limit
	out := []*domain.User{}
	for i := start; i < len(ids) && i < start+limit; i++ {
		out = append(out, cloneUser(r.byID[ids[i]]))
	}
	return out, int64(len(ids)), nil
}

func (r *memUsers) Apply(_ context.Context, id string, expectedRole domain.Role, m domain.UserMutation) (*domain.User, error) {
	if r.beforeApply != nil {
		r.beforeApply(r, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.applys++
	u, ok := r.byID[id]
	if !ok || u.Role != expectedRole {
		return nil, domain.ErrStaleRecord
	}
	if m.Role != nil {
		u.Role = *m.Role
	}
	if m.IsBanned != nil {
		u.IsBanned = *m.IsBanned
	}
	if m.Reward != nil {
		u.Rewards = append(u.Rewards, *m.Reward)
	}
	u.Moderation = append(u.Moderation, m.Event)
	u.UpdatedAt = m.At
	return cloneUser(u), nil
}

// seed stores u directly and returns its id.
func (r *memUsers) seed(name string, role domain.Role) *domain.User {
	u, err := r.Create(context.Background(), &domain.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "hashed:password123",
		Role:         role,
		Status:       domain.DefaultStatus,
		Rewards:      []domain.Reward{},
	})
	if err != nil {
		panic(err)
	}
	return u
}

func (r *memUsers) setRole(id string, role domain.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id].Role = role
}

func (r *memUsers) setBanned(id string, banned bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id].IsBanned = banned
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(hash, password string) bool { return hash == "hashed:"+password }

// memTokens is an in-memory TokenService.
type memTokens struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]string
	failOn string
}

func newMemTokens() *memTokens {
	return &memTokens{tokens: make(map[string]string)}
}

func (t *memTokens) Issue(_ context.Context, userID string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	tok := fmt.Sprintf("tok-%d", t.seq)
	t.tokens[tok] = userID
	return tok, nil
}

func (t *memTokens) Resolve(_ context.Context, token string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	uid, ok := t.tokens[token]
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return uid, nil
}

func (t *memTokens) RevokeAll(_ context.Context, userID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failOn == userID {
		return 0, fmt.Errorf("store unavailable")
	}
	n := 0
	for tok, uid := range t.tokens {
		if uid == userID {
			delete(t.tokens, tok)
			n++
		}
	}
	return n, nil
}

func (t *memTokens) live(userID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, uid := range t.tokens {
		if uid == userID {
			n++
		}
	}
	return n
}

// recordingMetrics counts what the services report.
type recordingMetrics struct {
	mu        sync.Mutex
	denied    map[domain.DenyReason]int
	allowed   int
	logins    map[string]int
	revoked   int
	applied   map[domain.ModerationKind]int
	conflicts int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		denied:  map[domain.DenyReason]int{},
		logins:  map[string]int{},
		applied: map[domain.ModerationKind]int{},
	}
}

func (m *recordingMetrics) AccessDecided(_ domain.Action, d domain.Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.Allowed {
		m.allowed++
		return
	}
	m.denied[d.Reason]++
}

func (m *recordingMetrics) LoginAttempted(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins[result]++
}

func (m *recordingMetrics) TokensRevoked(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked += n
}

func (m *recordingMetrics) ModerationApplied(kind domain.ModerationKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied[kind]++
}

func (m *recordingMetrics) ModerationConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}
