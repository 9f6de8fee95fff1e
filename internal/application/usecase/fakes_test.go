package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// fakeCompanyRepo repositorio en memoria; cuenta las lecturas de tipo de negocio.
type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
	btReads   int
	failWith  error
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: map[string]*entity.Company{}}
	for _, c := range companies {
		r.companies[c.ID] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) GetByDocument(document string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Document == document {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) Update(c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.ID]; !ok {
		return domain.ErrCompanyNotFound
	}
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Company
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCompanyRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) GetBusinessType(_ context.Context, companyID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.btReads++
	if r.failWith != nil {
		return "", r.failWith
	}
	c, ok := r.companies[companyID]
	if !ok {
		return "", domain.ErrCompanyNotFound
	}
	return c.BusinessType, nil
}

func (r *fakeCompanyRepo) UpdateBusinessType(_ context.Context, companyID, businessType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[companyID]
	if !ok {
		return domain.ErrCompanyNotFound
	}
	c.BusinessType = businessType
	return nil
}

func (r *fakeCompanyRepo) reads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.btReads
}

// fakeCache caché en memoria con fallo configurable.
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]string
	fail        bool
	invalidated []string
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string]string{}} }

var errCacheDown = errors.New("cache caída")

func (c *fakeCache) Get(_ context.Context, companyID string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return "", false, errCacheDown
	}
	v, ok := c.entries[companyID]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, companyID, bt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errCacheDown
	}
	c.entries[companyID] = bt
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, companyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, companyID)
	delete(c.entries, companyID)
	return nil
}

// fakeRolePermissionRepo repositorio de permisos en memoria.
type fakeRolePermissionRepo struct {
	mu    sync.Mutex
	items map[string]*entity.RolePermission
}

func newFakeRolePermissionRepo() *fakeRolePermissionRepo {
	return &fakeRolePermissionRepo{items: map[string]*entity.RolePermission{}}
}

func rpKey(companyID, role string) string { return companyID + "/" + role }

func (r *fakeRolePermissionRepo) Get(_ context.Context, companyID, role string) (*entity.RolePermission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rp, ok := r.items[rpKey(companyID, role)]
	if !ok {
		return nil, nil
	}
	cp := *rp
	return &cp, nil
}

func (r *fakeRolePermissionRepo) Upsert(_ context.Context, rp *entity.RolePermission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rp
	r.items[rpKey(rp.CompanyID, rp.Role)] = &cp
	return nil
}

func (r *fakeRolePermissionRepo) Delete(_ context.Context, companyID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, rpKey(companyID, role))
	return nil
}

func (r *fakeRolePermissionRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.RolePermission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.RolePermission
	for _, rp := range r.items {
		if rp.CompanyID == companyID {
			cp := *rp
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeUserRepo repositorio de usuarios en memoria; failCreate simula un fallo al insertar.
type fakeUserRepo struct {
	mu         sync.Mutex
	users      map[string]*entity.User
	failCreate error
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*entity.User{}} }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) byCompany(companyID string) []*entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ListByEmail(_ context.Context, email string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	list, _ := r.ListByEmail(ctx, email)
	for _, u := range list {
		if u.CompanyID == companyID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.User, error) {
	return r.byCompany(companyID), nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, companyID, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.CompanyID != companyID {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}
