// Package catalogtest provides in-memory implementations of the catalog
// store contracts for tests.
package catalogtest

import (
	"strings"

	"medicine-service/internal/catalog"
	"medicine-service/internal/model"
)

// MemStore is an in-memory catalog.Store keeping records in insertion
// order. Lookups return copies, mirroring how a database driver hands back
// detached rows: mutating a returned record does not touch the store until
// Save is called.
type MemStore struct {
	nextID  uint
	records []model.Medicine

	// Mutation counters, for asserting that an operation did or did not
	// reach the store.
	CreateCalls int
	SaveCalls   int
	DeleteCalls int
}

var _ catalog.Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

// Seed inserts a record directly, bypassing the service layer. companyID
// nil makes it system-owned.
func (s *MemStore) Seed(name string, companyID *uint) *model.Medicine {
	m := model.Medicine{
		Name:        name,
		Substitute0: "sub0", Substitute1: "sub1",
		Use0: "use0", Use1: "use1", Use2: "use2",
		SideEffect0: "se0", SideEffect1: "se1", SideEffect2: "se2",
		CompanyID: companyID,
	}
	m.ID = s.nextID
	s.nextID++
	s.records = append(s.records, m)
	copied := m
	return &copied
}

func (s *MemStore) FindByID(id uint) (*model.Medicine, error) {
	for _, m := range s.records {
		if m.ID == id {
			copied := m
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemStore) FindByNameIgnoreCase(name string) ([]model.Medicine, error) {
	name = strings.TrimSpace(name)
	var out []model.Medicine
	for _, m := range s.records {
		if strings.EqualFold(m.Name, name) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemStore) FindByCompany(companyID uint) ([]model.Medicine, error) {
	var out []model.Medicine
	for _, m := range s.records {
		if m.OwnedBy(companyID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemStore) FindByCompanyAndID(companyID, id uint) (*model.Medicine, error) {
	for _, m := range s.records {
		if m.ID == id && m.OwnedBy(companyID) {
			copied := m
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemStore) SearchByNamePrefix(prefix string) ([]model.Medicine, error) {
	var out []model.Medicine
	for _, m := range s.records {
		if strings.HasPrefix(strings.ToLower(m.Name), strings.ToLower(prefix)) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemStore) ExistsByNameExcludingCompany(name string, companyID uint, excludeID uint) (bool, error) {
	name = strings.TrimSpace(name)
	for _, m := range s.records {
		if !strings.EqualFold(m.Name, name) {
			continue
		}
		if excludeID != 0 && m.ID == excludeID {
			continue
		}
		// A record with no owner blocks every company.
		if m.CompanyID == nil || *m.CompanyID != companyID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) Count() (int64, error) {
	return int64(len(s.records)), nil
}

func (s *MemStore) Create(m *model.Medicine) error {
	s.CreateCalls++
	m.ID = s.nextID
	s.nextID++
	s.records = append(s.records, *m)
	return nil
}

func (s *MemStore) Save(m *model.Medicine) error {
	s.SaveCalls++
	for i := range s.records {
		if s.records[i].ID == m.ID {
			s.records[i] = *m
			return nil
		}
	}
	s.records = append(s.records, *m)
	return nil
}

func (s *MemStore) Delete(id uint) error {
	s.DeleteCalls++
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return nil
}

// MemDirectory is an in-memory catalog.CompanyDirectory.
type MemDirectory struct {
	Companies map[uint]*model.Company
}

var _ catalog.CompanyDirectory = (*MemDirectory)(nil)

func NewMemDirectory(ids ...uint) *MemDirectory {
	d := &MemDirectory{Companies: make(map[uint]*model.Company)}
	for _, id := range ids {
		d.Companies[id] = &model.Company{ID: id, Name: "Company"}
	}
	return d
}

func (d *MemDirectory) FindByID(id uint) (*model.Company, error) {
	return d.Companies[id], nil
}

func (d *MemDirectory) Exists(id uint) (bool, error) {
	_, ok := d.Companies[id]
	return ok, nil
}
