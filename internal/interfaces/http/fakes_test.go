package http_test

import (
	"context"
	"sync"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// memCompanyRepo repositorio de empresas en memoria.
type memCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
}

func newMemCompanyRepo(companies ...*entity.Company) *memCompanyRepo {
	r := &memCompanyRepo{companies: map[string]*entity.Company{}}
	for _, c := range companies {
		r.companies[c.ID] = c
	}
	return r
}

func (r *memCompanyRepo) Create(c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies[c.ID] = c
	return nil
}

func (r *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCompanyRepo) GetByDocument(document string) (*entity.Company, error) {
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

func (r *memCompanyRepo) Update(c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies[c.ID] = c
	return nil
}

func (r *memCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCompanyRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.companies, id)
	return nil
}

func (r *memCompanyRepo) GetBusinessType(_ context.Context, companyID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[companyID]
	if !ok {
		return "", domain.ErrCompanyNotFound
	}
	return c.BusinessType, nil
}

func (r *memCompanyRepo) UpdateBusinessType(_ context.Context, companyID, businessType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[companyID]
	if !ok {
		return domain.ErrCompanyNotFound
	}
	c.BusinessType = businessType
	return nil
}

// memRolePermissionRepo repositorio de permisos por rol en memoria.
type memRolePermissionRepo struct {
	mu    sync.Mutex
	items map[string]*entity.RolePermission
}

func newMemRolePermissionRepo() *memRolePermissionRepo {
	return &memRolePermissionRepo{items: map[string]*entity.RolePermission{}}
}

func (r *memRolePermissionRepo) Get(_ context.Context, companyID, role string) (*entity.RolePermission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rp, ok := r.items[companyID+"/"+role]
	if !ok {
		return nil, nil
	}
	cp := *rp
	return &cp, nil
}

func (r *memRolePermissionRepo) Upsert(_ context.Context, rp *entity.RolePermission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rp
	r.items[rp.CompanyID+"/"+rp.Role] = &cp
	return nil
}

func (r *memRolePermissionRepo) Delete(_ context.Context, companyID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, companyID+"/"+role)
	return nil
}

func (r *memRolePermissionRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.RolePermission, error) {
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

// memUserRepo repositorio de usuarios en memoria.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Email == u.Email && x.CompanyID == u.CompanyID {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) find(match func(*entity.User) bool) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *memUserRepo) ListByEmail(_ context.Context, email string) ([]*entity.User, error) {
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

func (r *memUserRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email && u.CompanyID == companyID }), nil
}

func (r *memUserRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, companyID, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.CompanyID != companyID {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}
