package catalog

import "medicine-service/internal/model"

// Store is the persisted medicine catalog. Implementations do not enforce
// ownership; the service layer is responsible for authorization. Lookups by
// name must tolerate multiple rows: uniqueness is a service-level invariant
// with no backing storage constraint, so pre-existing duplicates can occur.
type Store interface {
	// FindByID returns the medicine with the given id, or nil when absent.
	FindByID(id uint) (*model.Medicine, error)
	// FindByNameIgnoreCase returns every medicine whose name matches
	// case-insensitively, in insertion order.
	FindByNameIgnoreCase(name string) ([]model.Medicine, error)
	// FindByCompany returns the medicines owned by a company, in insertion order.
	FindByCompany(companyID uint) ([]model.Medicine, error)
	// FindByCompanyAndID returns a company's medicine by id, or nil when the
	// id does not exist or is not owned by the company.
	FindByCompanyAndID(companyID, id uint) (*model.Medicine, error)
	// SearchByNamePrefix returns medicines whose name starts with the prefix,
	// case-insensitively.
	SearchByNamePrefix(prefix string) ([]model.Medicine, error)
	// ExistsByNameExcludingCompany reports whether any medicine with the
	// given case-insensitive name is owned by someone other than companyID.
	// System-owned records (no company) count as "other". A non-zero
	// excludeID leaves that record out of the check.
	ExistsByNameExcludingCompany(name string, companyID uint, excludeID uint) (bool, error)
	// Count returns the number of catalog records.
	Count() (int64, error)
	Create(m *model.Medicine) error
	Save(m *model.Medicine) error
	Delete(id uint) error
}

// CompanyDirectory resolves company ids. Company accounts are owned by the
// identity service; the catalog only reads them.
type CompanyDirectory interface {
	FindByID(id uint) (*model.Company, error)
	Exists(id uint) (bool, error)
}
