package taxonomy

import (
	"fmt"

	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

type TaxonomyStore interface {
	GetEntry(kind Kind, id int) (*models.TaxonomyEntry, error)
	GetEntries(kind Kind, tenantID *int) ([]models.TaxonomyEntry, error)
	PersistEntry(kind Kind, req models.TaxonomyRequest) (*models.TaxonomyEntry, error)
	UpdateEntry(kind Kind, id int, name string) (*models.TaxonomyEntry, error)
	DeleteEntry(kind Kind, id int) error
	CountAssetsReferencing(kind Kind, id int) (int, error)
	Reorder(kind Kind, orderedIDs []int) error
}

type TaxonomyService struct {
	repo TaxonomyStore
}

func NewTaxonomyService(repo TaxonomyStore) *TaxonomyService {
	return &TaxonomyService{repo: repo}
}

func (s *TaxonomyService) List(kind Kind, tenantID *int) ([]models.TaxonomyEntry, error) {
	return s.repo.GetEntries(kind, tenantID)
}

func (s *TaxonomyService) Get(kind Kind, id int) (*models.TaxonomyEntry, error) {
	return s.repo.GetEntry(kind, id)
}

func (s *TaxonomyService) Create(kind Kind, req models.TaxonomyRequest) (*models.TaxonomyEntry, error) {
	if req.Name == "" {
		return nil, custom_error.NewValidationError("name", "name is required", nil)
	}
	return s.repo.PersistEntry(kind, req)
}

func (s *TaxonomyService) Update(kind Kind, id int, req models.TaxonomyRequest) (*models.TaxonomyEntry, error) {
	if req.Name == "" {
		return nil, custom_error.NewValidationError("name", "name is required", nil)
	}
	return s.repo.UpdateEntry(kind, id, req.Name)
}

// Delete refuses while assets still point at the entry; callers clear or
// retarget the pointers first.
func (s *TaxonomyService) Delete(kind Kind, id int) error {
	count, err := s.repo.CountAssetsReferencing(kind, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return custom_error.NewConflictError(
			fmt.Sprintf("%s is referenced by %d assets and cannot be deleted", kind.Singular(), count),
		)
	}
	return s.repo.DeleteEntry(kind, id)
}

func (s *TaxonomyService) Reorder(kind Kind, orderedIDs []int) error {
	if len(orderedIDs) == 0 {
		return custom_error.NewValidationError("order", "ordered id list is required", nil)
	}
	seen := make(map[int]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return custom_error.NewValidationError("order", "duplicate id in order list", id)
		}
		seen[id] = true
	}
	return s.repo.Reorder(kind, orderedIDs)
}
