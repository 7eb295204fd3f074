package catalog

import (
	"strings"

	"medicine-service/internal/model"
)

// AddMedicineRequest carries the nine descriptive fields of a new catalog
// entry. The acting company comes from the authenticated request, never from
// the payload.
type AddMedicineRequest struct {
	Name        string `json:"name"`
	Substitute0 string `json:"substitute0"`
	Substitute1 string `json:"substitute1"`
	Use0        string `json:"use0"`
	Use1        string `json:"use1"`
	Use2        string `json:"use2"`
	SideEffect0 string `json:"sideeffect0"`
	SideEffect1 string `json:"sideeffect1"`
	SideEffect2 string `json:"sideeffect2"`
}

// UpdateMedicineRequest is a full-replace payload: every field is required,
// unlike partial-patch edit endpoints elsewhere.
type UpdateMedicineRequest struct {
	Name        string `json:"name"`
	Substitute0 string `json:"substitute0"`
	Substitute1 string `json:"substitute1"`
	Use0        string `json:"use0"`
	Use1        string `json:"use1"`
	Use2        string `json:"use2"`
	SideEffect0 string `json:"sideeffect0"`
	SideEffect1 string `json:"sideeffect1"`
	SideEffect2 string `json:"sideeffect2"`
}

// Service applies the deduplication policy around single-record catalog
// mutations and enforces ownership on update and delete.
type Service struct {
	store        Store
	companies    CompanyDirectory
	dedupe       *Deduper
	rowErrorHook RowErrorHook
}

func NewService(store Store, companies CompanyDirectory) *Service {
	return &Service{
		store:     store,
		companies: companies,
		dedupe:    NewDeduper(store),
	}
}

// Store exposes the underlying catalog store, for read-only collaborators
// such as the startup seeder.
func (s *Service) Store() Store {
	return s.store
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Add creates a new medicine owned by the given company. All nine fields
// are required; the name must not collide with any addressable record.
func (s *Service) Add(companyID uint, req AddMedicineRequest) (*model.Medicine, error) {
	if isBlank(req.Name) ||
		isBlank(req.Substitute0) || isBlank(req.Substitute1) ||
		isBlank(req.Use0) || isBlank(req.Use1) || isBlank(req.Use2) ||
		isBlank(req.SideEffect0) || isBlank(req.SideEffect1) || isBlank(req.SideEffect2) {
		return nil, &ValidationError{Message: "Please fill in all required fields."}
	}

	exists, err := s.companies.Exists(companyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCompanyNotFound
	}

	name := strings.TrimSpace(req.Name)

	verdict, err := s.dedupe.Check(name, companyID, 0)
	if err != nil {
		return nil, err
	}
	switch verdict {
	case VerdictConflictOther:
		return nil, &ConflictError{Verdict: verdict, Message: "This medicine is already added by another company."}
	case VerdictConflictSelf:
		return nil, &ConflictError{Verdict: verdict, Message: "Your company has already added this medicine."}
	case VerdictConflictSystem:
		return nil, &ConflictError{Verdict: verdict, Message: "This medicine already exists in the application dataset."}
	}

	medicine := &model.Medicine{
		Name:        name,
		Substitute0: strings.TrimSpace(req.Substitute0),
		Substitute1: strings.TrimSpace(req.Substitute1),
		Use0:        strings.TrimSpace(req.Use0),
		Use1:        strings.TrimSpace(req.Use1),
		Use2:        strings.TrimSpace(req.Use2),
		SideEffect0: strings.TrimSpace(req.SideEffect0),
		SideEffect1: strings.TrimSpace(req.SideEffect1),
		SideEffect2: strings.TrimSpace(req.SideEffect2),
		CompanyID:   &companyID,
	}
	if err := s.store.Create(medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// Update replaces the fields of a medicine owned by the company. The
// returned bool reports whether anything actually changed; a fully identical
// payload is a no-op and does not touch the stored record.
func (s *Service) Update(companyID, medicineID uint, req UpdateMedicineRequest) (*model.Medicine, bool, error) {
	medicine, err := s.store.FindByID(medicineID)
	if err != nil {
		return nil, false, err
	}
	if medicine == nil {
		return nil, false, ErrMedicineNotFound
	}

	if medicine.SystemOwned() {
		return nil, false, &OwnershipError{
			SystemOwned: true,
			Message:     "You do not have the privilege to update this medicine. It belongs to the app.",
		}
	}
	if !medicine.OwnedBy(companyID) {
		return nil, false, &OwnershipError{
			Message: "You do not have the privilege to update this medicine. It belongs to another company.",
		}
	}

	if isBlank(req.Name) ||
		isBlank(req.Substitute0) || isBlank(req.Substitute1) ||
		isBlank(req.Use0) || isBlank(req.Use1) || isBlank(req.Use2) ||
		isBlank(req.SideEffect0) || isBlank(req.SideEffect1) || isBlank(req.SideEffect2) {
		return nil, false, &ValidationError{Message: "Please fill in all required fields before updating."}
	}

	nameChanged := false
	newName := strings.TrimSpace(req.Name)
	if !strings.EqualFold(newName, medicine.Name) {
		verdict, err := s.dedupe.Check(newName, companyID, medicine.ID)
		if err != nil {
			return nil, false, err
		}
		switch verdict {
		case VerdictConflictOther, VerdictConflictSystem:
			return nil, false, &ConflictError{Verdict: verdict, Message: "This medicine is already added by another company or the application."}
		case VerdictConflictSelf:
			return nil, false, &ConflictError{Verdict: verdict, Message: "Your company has already added a medicine with that name."}
		}
		medicine.Name = newName
		nameChanged = true
	}

	changed := false
	if req.Substitute0 != medicine.Substitute0 {
		medicine.Substitute0 = strings.TrimSpace(req.Substitute0)
		changed = true
	}
	if req.Substitute1 != medicine.Substitute1 {
		medicine.Substitute1 = strings.TrimSpace(req.Substitute1)
		changed = true
	}
	if req.Use0 != medicine.Use0 {
		medicine.Use0 = strings.TrimSpace(req.Use0)
		changed = true
	}
	if req.Use1 != medicine.Use1 {
		medicine.Use1 = strings.TrimSpace(req.Use1)
		changed = true
	}
	if req.Use2 != medicine.Use2 {
		medicine.Use2 = strings.TrimSpace(req.Use2)
		changed = true
	}
	if req.SideEffect0 != medicine.SideEffect0 {
		medicine.SideEffect0 = strings.TrimSpace(req.SideEffect0)
		changed = true
	}
	if req.SideEffect1 != medicine.SideEffect1 {
		medicine.SideEffect1 = strings.TrimSpace(req.SideEffect1)
		changed = true
	}
	if req.SideEffect2 != medicine.SideEffect2 {
		medicine.SideEffect2 = strings.TrimSpace(req.SideEffect2)
		changed = true
	}

	if !changed && !nameChanged {
		return medicine, false, nil
	}

	if err := s.store.Save(medicine); err != nil {
		return nil, false, err
	}
	return medicine, true, nil
}

// Delete removes a medicine owned by the company. System-owned records and
// records of other companies are protected, with distinct failure texts.
func (s *Service) Delete(companyID, medicineID uint) error {
	medicine, err := s.store.FindByID(medicineID)
	if err != nil {
		return err
	}
	if medicine == nil {
		return ErrMedicineNotFound
	}

	if medicine.SystemOwned() {
		return &OwnershipError{
			SystemOwned: true,
			Message:     "You do not have the privilege to delete this medicine. It belongs to the application.",
		}
	}
	if !medicine.OwnedBy(companyID) {
		return &OwnershipError{
			Message: "You are not authorized to delete this medicine.",
		}
	}

	return s.store.Delete(medicineID)
}

// MedicinesByCompany lists a company's own catalog entries.
func (s *Service) MedicinesByCompany(companyID uint) ([]model.Medicine, error) {
	return s.store.FindByCompany(companyID)
}

// MedicineByCompanyAndID fetches one of the company's own entries.
func (s *Service) MedicineByCompanyAndID(companyID, medicineID uint) (*model.Medicine, error) {
	medicine, err := s.store.FindByCompanyAndID(companyID, medicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}
	return medicine, nil
}

// SearchByNamePrefix finds medicines whose name starts with the given
// prefix, case-insensitively.
func (s *Service) SearchByNamePrefix(prefix string) ([]model.Medicine, error) {
	return s.store.SearchByNamePrefix(prefix)
}
