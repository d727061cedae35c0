package repository

import (
	"fmt"

	"github.com/camden-git/civicarchive/models"
	"gorm.io/gorm"
)

// VoteTypeRepository handles database operations for VoteType entities
type VoteTypeRepository struct {
	DB *gorm.DB
}

// NewVoteTypeRepository creates a new instance of VoteTypeRepository
func NewVoteTypeRepository(db *gorm.DB) *VoteTypeRepository {
	return &VoteTypeRepository{DB: db}
}

// Create creates a new vote type record in the database
func (r *VoteTypeRepository) Create(voteType *models.VoteType) error {
	err := r.DB.Create(voteType).Error
	if err != nil {
		return fmt.Errorf("failed to create vote type %s: %w", voteType.Name, err)
	}
	return nil
}

// ListAll retrieves all vote types, ordered by name
func (r *VoteTypeRepository) ListAll() ([]models.VoteType, error) {
	var voteTypes []models.VoteType
	err := r.DB.Order("name ASC").Find(&voteTypes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vote types: %w", err)
	}
	return voteTypes, nil
}
