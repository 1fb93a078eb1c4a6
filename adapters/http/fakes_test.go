package http

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/user"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*user.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return apperror.NewConflict("User already exists", "users_email_key violated")
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFound("User", email)
	}
	cp := *u
	return &cp, nil
}

type memPortfolioRepo struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]portfolio.Portfolio
}

func newMemPortfolioRepo() *memPortfolioRepo {
	return &memPortfolioRepo{byUser: make(map[uuid.UUID]portfolio.Portfolio)}
}

func (r *memPortfolioRepo) Upsert(_ context.Context, p *portfolio.Portfolio) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for owner, existing := range r.byUser {
		if owner != p.UserID && existing.Username == p.Username {
			return "", apperror.NewConflict("Username already taken", "portfolio_username_key violated")
		}
	}

	previous := ""
	if existing, ok := r.byUser[p.UserID]; ok {
		previous = existing.Username
		p.ID = existing.ID
	} else if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.byUser[p.UserID] = *p
	return previous, nil
}

func (r *memPortfolioRepo) FindByUsername(_ context.Context, username string) (*portfolio.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byUser {
		if p.Username == username {
			cp := p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("Portfolio", username)
}

func (r *memPortfolioRepo) ListRecent(_ context.Context, limit int) ([]*portfolio.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*portfolio.Portfolio, 0, len(r.byUser))
	for _, p := range r.byUser {
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPortfolioRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byUser)
}

type fakeUploader struct {
	folder   string
	publicID string
	body     string
}

func (u *fakeUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	u.folder, u.publicID, u.body = folder, publicID, string(b)
	return fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/%s/%s.png", folder, publicID), nil
}

