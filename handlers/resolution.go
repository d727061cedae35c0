package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/camden-git/civicarchive/database"
	"github.com/camden-git/civicarchive/repository"
	"github.com/facette/natsort"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type ResolutionHandler struct {
	Repo     repository.ResolutionRepositoryInterface
	ReportDB *sql.DB
}

func (rh *ResolutionHandler) ListResolutions(w http.ResponseWriter, r *http.Request) {
	resolutions, err := rh.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing resolutions: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve resolutions")
		return
	}
	writeJSON(w, http.StatusOK, resolutions)
}

func (rh *ResolutionHandler) GetResolution(w http.ResponseWriter, r *http.Request) {
	id, ok := resolutionIDParam(w, r)
	if !ok {
		return
	}

	resolution, err := rh.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Resolution not found")
		} else {
			log.Printf("Error getting resolution %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve resolution")
		}
		return
	}

	// attachment titles like "Exhibit 2" and "Exhibit 10" should order
	// naturally, not lexically
	sort.SliceStable(resolution.Attachments, func(i, j int) bool {
		return natsort.Compare(resolution.Attachments[i].Title, resolution.Attachments[j].Title)
	})

	writeJSON(w, http.StatusOK, resolution)
}

// GetResolutionVotes serves the per-vote-type voter tally for one
// resolution, read from the reporting view.
func (rh *ResolutionHandler) GetResolutionVotes(w http.ResponseWriter, r *http.Request) {
	id, ok := resolutionIDParam(w, r)
	if !ok {
		return
	}

	tallies, err := database.GetVoteTallies(rh.ReportDB, id)
	if err != nil {
		log.Printf("Error getting vote tallies for resolution %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve vote tallies")
		return
	}
	if tallies == nil {
		tallies = []database.VoteTally{}
	}
	writeJSON(w, http.StatusOK, tallies)
}

// DeleteResolution removes one resolution and everything it owns; a later
// crawl of the same id will re-archive it from scratch.
func (rh *ResolutionHandler) DeleteResolution(w http.ResponseWriter, r *http.Request) {
	id, ok := resolutionIDParam(w, r)
	if !ok {
		return
	}

	if err := rh.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Resolution not found")
		} else {
			log.Printf("Error deleting resolution %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to delete resolution")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func resolutionIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "resolution_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid resolution ID format")
		return 0, false
	}
	return id, true
}
