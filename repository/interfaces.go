package repository

import (
	"github.com/camden-git/civicarchive/models"
)

// ResolutionRepositoryInterface defines the methods for resolution data operations
type ResolutionRepositoryInterface interface {
	CreateBatch(resolutions []*models.Resolution) error
	ListIDs() ([]int64, error)
	ListAll() ([]models.Resolution, error)
	GetByID(id int64) (*models.Resolution, error)
	Delete(id int64) error
}

// PersonRepositoryInterface defines the methods for person data operations.
// The identity resolver only ever creates and lists; people are never
// updated or deleted by the pipeline.
type PersonRepositoryInterface interface {
	Create(person *models.Person) error
	ListAll() ([]models.Person, error)
}

// VoteTypeRepositoryInterface defines the methods for vote type data operations
type VoteTypeRepositoryInterface interface {
	Create(voteType *models.VoteType) error
	ListAll() ([]models.VoteType, error)
}
