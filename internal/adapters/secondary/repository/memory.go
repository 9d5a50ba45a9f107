package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

// MemoryStore est un store documentaire en mémoire (dev local et tests).
// Les documents sont copiés en entrée et en sortie : un appelant ne modifie jamais l'état stocké.
// Les écritures sont sérialisées avec les transactions ; une transaction en échec restaure l'instantané pris à son début.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	accounts     map[string]*domain.Account
	accountEmail map[string]string
	posts        map[string]*memPost
	sequence     uint64

	now func() time.Time
}

type memPost struct {
	post *domain.Post
	seq  uint64 // départage des createdAt identiques
}

type memSnapshot struct {
	accounts     map[string]*domain.Account
	accountEmail map[string]string
	posts        map[string]*memPost
	sequence     uint64
}

type memTxKey struct{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:     make(map[string]*domain.Account),
		accountEmail: make(map[string]string),
		posts:        make(map[string]*memPost),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock remplace l'horloge utilisée pour les timestamps.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// Accounts et Posts exposent les deux collections du store.
func (s *MemoryStore) Accounts() *MemoryAccountRepo { return &MemoryAccountRepo{s: s} }
func (s *MemoryStore) Posts() *MemoryPostRepo       { return &MemoryPostRepo{s: s} }

// --- TRANSACTIONS ---

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inMemTx(ctx) {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func inMemTx(ctx context.Context) bool {
	v, _ := ctx.Value(memTxKey{}).(bool)
	return v
}

// write exécute une écriture hors transaction en respectant l'ordre des transactions en cours.
func (s *MemoryStore) write(ctx context.Context, fn func() error) error {
	if !inMemTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *MemoryStore) snapshot() memSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := memSnapshot{
		accounts:     make(map[string]*domain.Account, len(s.accounts)),
		accountEmail: make(map[string]string, len(s.accountEmail)),
		posts:        make(map[string]*memPost, len(s.posts)),
		sequence:     s.sequence,
	}
	for id, a := range s.accounts {
		snap.accounts[id] = cloneAccount(a)
	}
	for k, v := range s.accountEmail {
		snap.accountEmail[k] = v
	}
	for id, p := range s.posts {
		snap.posts[id] = &memPost{post: clonePost(p.post), seq: p.seq}
	}
	return snap
}

func (s *MemoryStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = snap.accounts
	s.accountEmail = snap.accountEmail
	s.posts = snap.posts
	s.sequence = snap.sequence
}

// --- ACCOUNTS ---

type MemoryAccountRepo struct{ s *MemoryStore }

func (r *MemoryAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return r.s.write(ctx, func() error {
		key := account.Email
		if _, exists := r.s.accountEmail[key]; exists {
			return domain.ErrDuplicateEmail
		}
		r.s.accounts[account.ID] = cloneAccount(account)
		r.s.accountEmail[key] = account.ID
		return nil
	})
}

func (r *MemoryAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.accountEmail[email]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return cloneAccount(r.s.accounts[id]), nil
}

func (r *MemoryAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return cloneAccount(a), nil
}

func (r *MemoryAccountRepo) Save(ctx context.Context, account *domain.Account) error {
	return r.s.write(ctx, func() error {
		current, ok := r.s.accounts[account.ID]
		if !ok {
			return domain.ErrRecordNotFound
		}
		oldKey, newKey := current.Email, account.Email
		if oldKey != newKey {
			if _, taken := r.s.accountEmail[newKey]; taken {
				return domain.ErrDuplicateEmail
			}
			delete(r.s.accountEmail, oldKey)
			r.s.accountEmail[newKey] = account.ID
		}
		// Les back-références ne bougent que via AppendPost/RemovePost
		stored := cloneAccount(account)
		stored.PostIDs = current.PostIDs
		r.s.accounts[account.ID] = stored
		account.PostIDs = slices.Clone(current.PostIDs)
		return nil
	})
}

func (r *MemoryAccountRepo) AppendPost(ctx context.Context, accountID, postID string) error {
	return r.s.write(ctx, func() error {
		a, ok := r.s.accounts[accountID]
		if !ok {
			return domain.ErrRecordNotFound
		}
		a.AttachPost(postID)
		return nil
	})
}

func (r *MemoryAccountRepo) RemovePost(ctx context.Context, accountID, postID string) error {
	return r.s.write(ctx, func() error {
		a, ok := r.s.accounts[accountID]
		if !ok {
			return domain.ErrRecordNotFound
		}
		a.DetachPost(postID)
		return nil
	})
}

// --- POSTS ---

type MemoryPostRepo struct{ s *MemoryStore }

func (r *MemoryPostRepo) Create(ctx context.Context, post *domain.Post) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.accounts[post.CreatorID]; !ok {
			return domain.ErrRecordNotFound
		}
		now := r.s.now()
		post.CreatedAt, post.UpdatedAt = now, now
		r.s.sequence++
		r.s.posts[post.ID] = &memPost{post: clonePost(post), seq: r.s.sequence}
		return nil
	})
}

func (r *MemoryPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return clonePost(p.post), nil
}

func (r *MemoryPostRepo) FindByIDWithCreator(_ context.Context, id string) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return r.populate(p.post), nil
}

func (r *MemoryPostRepo) List(_ context.Context, offset, limit int) ([]*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*memPost, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].post.CreatedAt.Equal(all[j].post.CreatedAt) {
			return all[i].post.CreatedAt.After(all[j].post.CreatedAt)
		}
		return all[i].seq > all[j].seq
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) || limit <= 0 {
		return []*domain.Post{}, nil
	}
	end := min(offset+limit, len(all))

	out := make([]*domain.Post, 0, end-offset)
	for _, p := range all[offset:end] {
		out = append(out, r.populate(p.post))
	}
	return out, nil
}

func (r *MemoryPostRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.posts), nil
}

func (r *MemoryPostRepo) Save(ctx context.Context, post *domain.Post) error {
	return r.s.write(ctx, func() error {
		current, ok := r.s.posts[post.ID]
		if !ok {
			return domain.ErrRecordNotFound
		}
		post.CreatedAt = current.post.CreatedAt
		post.UpdatedAt = r.s.now()
		if post.UpdatedAt.Before(post.CreatedAt) {
			post.UpdatedAt = post.CreatedAt
		}
		current.post = clonePost(post)
		return nil
	})
}

func (r *MemoryPostRepo) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.posts[id]; !ok {
			return domain.ErrRecordNotFound
		}
		delete(r.s.posts, id)
		return nil
	})
}

// populate résout la référence creator (appelant sous verrou de lecture).
func (r *MemoryPostRepo) populate(p *domain.Post) *domain.Post {
	out := clonePost(p)
	if a, ok := r.s.accounts[p.CreatorID]; ok {
		out.Creator = cloneAccount(a)
	}
	return out
}

// --- HELPERS ---

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	cp := *a
	cp.PostIDs = slices.Clone(a.PostIDs)
	if cp.PostIDs == nil {
		cp.PostIDs = []string{}
	}
	return &cp
}

func clonePost(p *domain.Post) *domain.Post {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Creator = nil
	return &cp
}
