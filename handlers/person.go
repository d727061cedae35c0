package handlers

import (
	"log"
	"net/http"

	"github.com/camden-git/civicarchive/models"
	"github.com/camden-git/civicarchive/repository"
)

type PersonHandler struct {
	Repo repository.PersonRepositoryInterface
}

func (ph *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := ph.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing people: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve people")
		return
	}
	if people == nil {
		people = []models.Person{}
	}
	writeJSON(w, http.StatusOK, people)
}
