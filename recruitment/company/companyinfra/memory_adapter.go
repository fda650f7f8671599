package companyinfra

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"github.com/PhucNguyen-rsc/job-board-application/recruitment/company"
)

// MemoryCompanyRepository implements company.Repository in process memory
type MemoryCompanyRepository struct {
	mu        sync.RWMutex
	companies map[kernel.CompanyID]company.Company
}

func NewMemoryCompanyRepository() *MemoryCompanyRepository {
	return &MemoryCompanyRepository{
		companies: make(map[kernel.CompanyID]company.Company),
	}
}

func (r *MemoryCompanyRepository) Create(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(c); err != nil {
		return err
	}
	r.companies[c.ID] = *c
	return nil
}

func (r *MemoryCompanyRepository) GetByID(_ context.Context, id kernel.CompanyID) (*company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.companies[id]
	if !ok {
		return nil, company.ErrCompanyNotFound()
	}
	return &c, nil
}

func (r *MemoryCompanyRepository) GetByEmail(_ context.Context, email kernel.Email) (*company.Company, error) {
	return r.first(func(c *company.Company) bool { return c.Email == email })
}

func (r *MemoryCompanyRepository) GetByName(_ context.Context, name kernel.Slug) (*company.Company, error) {
	return r.first(func(c *company.Company) bool { return c.Name == name })
}

func (r *MemoryCompanyRepository) Find(_ context.Context, filter company.Filter) ([]*company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*company.Company, 0)
	for _, c := range r.companies {
		c := c
		if strings.Contains(c.Email.String(), filter.Email) {
			out = append(out, &c)
		}
	}
	sortByCreation(out)
	return out, nil
}

func (r *MemoryCompanyRepository) Update(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.companies[c.ID]
	if !ok {
		return company.ErrCompanyNotFound()
	}
	if err := r.checkUnique(c); err != nil {
		return err
	}

	existing.Name = c.Name
	existing.Email = c.Email
	existing.Country = c.Country
	existing.Description = c.Description
	existing.UpdatedAt = c.UpdatedAt
	r.companies[c.ID] = existing
	return nil
}

func (r *MemoryCompanyRepository) Delete(_ context.Context, id kernel.CompanyID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[id]; !ok {
		return company.ErrCompanyNotFound()
	}
	delete(r.companies, id)
	return nil
}

// checkUnique mirrors the unique indexes of the companies table
func (r *MemoryCompanyRepository) checkUnique(c *company.Company) error {
	for id, other := range r.companies {
		if id == c.ID {
			continue
		}
		if other.Email == c.Email {
			return company.ErrEmailAlreadyExists()
		}
		if other.Name == c.Name {
			return company.ErrNameAlreadyExists()
		}
	}
	return nil
}

func (r *MemoryCompanyRepository) first(match func(*company.Company) bool) (*company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*company.Company
	for _, c := range r.companies {
		c := c
		if match(&c) {
			found = append(found, &c)
		}
	}
	if len(found) == 0 {
		return nil, company.ErrCompanyNotFound()
	}
	sortByCreation(found)
	return found[0], nil
}

func sortByCreation(companies []*company.Company) {
	sort.Slice(companies, func(i, j int) bool {
		if companies[i].CreatedAt.Equal(companies[j].CreatedAt) {
			return companies[i].ID < companies[j].ID
		}
		return companies[i].CreatedAt.Before(companies[j].CreatedAt)
	})
}
