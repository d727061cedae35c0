package repository

import (
	"errors"
	"fmt"

	"github.com/camden-git/civicarchive/models"
	"gorm.io/gorm"
)

// ResolutionRepository handles database operations for Resolution aggregates
type ResolutionRepository struct {
	DB *gorm.DB
}

// NewResolutionRepository creates a new instance of ResolutionRepository
func NewResolutionRepository(db *gorm.DB) *ResolutionRepository {
	return &ResolutionRepository{DB: db}
}

// CreateBatch persists a batch of fully assembled resolution aggregates in a
// single transaction. GORM inserts each aggregate's owned children
// (attachments, sections, functions, meetings, votes, person votes) along
// with it. Either every staged aggregate lands or none do.
func (r *ResolutionRepository) CreateBatch(resolutions []*models.Resolution) error {
	if len(resolutions) == 0 {
		return nil
	}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		for _, resolution := range resolutions {
			if err := tx.Create(resolution).Error; err != nil {
				return fmt.Errorf("failed to create resolution %d: %w", resolution.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit resolution batch: %w", err)
	}
	return nil
}

// ListIDs returns the ids of every recorded resolution, used by the crawler
// for skip-on-resume.
func (r *ResolutionRepository) ListIDs() ([]int64, error) {
	var ids []int64
	err := r.DB.Model(&models.Resolution{}).Order("id ASC").Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resolution ids: %w", err)
	}
	return ids, nil
}

// ListAll retrieves all resolutions without their child records,
// ordered by id
func (r *ResolutionRepository) ListAll() ([]models.Resolution, error) {
	var resolutions []models.Resolution
	err := r.DB.Order("id ASC").Find(&resolutions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resolutions: %w", err)
	}
	return resolutions, nil
}

// GetByID retrieves a resolution by its id, preloading every owned child
// record including the per-vote person votes
func (r *ResolutionRepository) GetByID(id int64) (*models.Resolution, error) {
	var resolution models.Resolution
	err := r.DB.
		Preload("Attachments").
		Preload("CustomSections").
		Preload("Functions").
		Preload("Meetings").
		Preload("Votes").
		Preload("Votes.PersonVotes").
		First(&resolution, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get resolution by ID %d: %w", id, err)
	}
	return &resolution, nil
}

// Delete removes a resolution by its id; owned children go with it via
// cascade
func (r *ResolutionRepository) Delete(id int64) error {
	result := r.DB.Delete(&models.Resolution{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete resolution ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
