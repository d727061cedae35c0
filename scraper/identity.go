package scraper

import (
	"errors"
	"fmt"

	"github.com/camden-git/civicarchive/models"
	"github.com/camden-git/civicarchive/repository"
)

// IdentityResolver maps free-text names to stable surrogate ids for the two
// identity spaces of the pipeline: people and vote types. It is constructed
// once per crawl run, loads both spaces from the store up front, and creates
// entities lazily on first sight. After any creation the affected space is
// reloaded in full from the store; that keeps the cache and the store in
// agreement even if something else wrote to the table, at the cost of a full
// reload on every newly discovered name. Discovery is rare relative to
// reuse, so the reload is not a hot path. Any replacement strategy must
// uphold the same contract: a name's id is only handed out once the row is
// known to exist in the store.
type IdentityResolver struct {
	people    repository.PersonRepositoryInterface
	voteTypes repository.VoteTypeRepositoryInterface

	peopleByName    map[string]uint
	voteTypesByName map[string]uint
}

// VoteIdentities is the resolved form of one NormalizedVote: every name and
// label it references, materialized to ids.
type VoteIdentities struct {
	MoverID   uint
	People    map[string]uint
	VoteTypes map[string]uint
}

// NewIdentityResolver builds a resolver and primes both caches from the
// store.
func NewIdentityResolver(people repository.PersonRepositoryInterface, voteTypes repository.VoteTypeRepositoryInterface) (*IdentityResolver, error) {
	r := &IdentityResolver{
		people:    people,
		voteTypes: voteTypes,
	}
	if err := r.reloadPeople(); err != nil {
		return nil, err
	}
	if err := r.reloadVoteTypes(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *IdentityResolver) reloadPeople() error {
	people, err := r.people.ListAll()
	if err != nil {
		return fmt.Errorf("failed to load people cache: %w", err)
	}
	r.peopleByName = make(map[string]uint, len(people))
	for _, person := range people {
		r.peopleByName[person.Name] = person.ID
	}
	return nil
}

func (r *IdentityResolver) reloadVoteTypes() error {
	voteTypes, err := r.voteTypes.ListAll()
	if err != nil {
		return fmt.Errorf("failed to load vote type cache: %w", err)
	}
	r.voteTypesByName = make(map[string]uint, len(voteTypes))
	for _, voteType := range voteTypes {
		r.voteTypesByName[voteType.Name] = voteType.ID
	}
	return nil
}

// ResolvePerson returns the stable id for one person name, creating the
// person on first sight. Matching is exact and case-sensitive.
func (r *IdentityResolver) ResolvePerson(name string) (uint, error) {
	if id, ok := r.peopleByName[name]; ok {
		return id, nil
	}
	ids, err := r.resolvePeople([]string{name})
	if err != nil {
		return 0, err
	}
	return ids[name], nil
}

// resolvePeople resolves a batch of names, creating every miss and then
// reloading the cache once for the whole batch.
func (r *IdentityResolver) resolvePeople(names []string) (map[string]uint, error) {
	created := false
	for _, name := range names {
		if _, ok := r.peopleByName[name]; ok {
			continue
		}
		if err := r.people.Create(&models.Person{Name: name}); err != nil {
			return nil, fmt.Errorf("failed to create person %q: %w", name, err)
		}
		created = true
	}
	if created {
		if err := r.reloadPeople(); err != nil {
			return nil, err
		}
	}

	resolved := make(map[string]uint, len(names))
	for _, name := range names {
		id, ok := r.peopleByName[name]
		if !ok {
			return nil, fmt.Errorf("person %q missing from store after reload", name)
		}
		resolved[name] = id
	}
	return resolved, nil
}

// resolveVoteTypes resolves a batch of vote-type labels the same way.
// Labels are stored verbatim; typos become their own vote types.
func (r *IdentityResolver) resolveVoteTypes(labels []string) (map[string]uint, error) {
	created := false
	for _, label := range labels {
		if _, ok := r.voteTypesByName[label]; ok {
			continue
		}
		if err := r.voteTypes.Create(&models.VoteType{Name: label}); err != nil {
			return nil, fmt.Errorf("failed to create vote type %q: %w", label, err)
		}
		created = true
	}
	if created {
		if err := r.reloadVoteTypes(); err != nil {
			return nil, err
		}
	}

	resolved := make(map[string]uint, len(labels))
	for _, label := range labels {
		id, ok := r.voteTypesByName[label]
		if !ok {
			return nil, fmt.Errorf("vote type %q missing from store after reload", label)
		}
		resolved[label] = id
	}
	return resolved, nil
}

// ResolveVoteRecord materializes every identity one normalized vote record
// references: the mover first, then every distinct voter across the
// vote-type buckets, then every vote-type label. By the time it returns,
// every id in the result is confirmed to exist in the store, so the built
// vote records can never reference an identity that was not materialized
// first.
func (r *IdentityResolver) ResolveVoteRecord(vote NormalizedVote) (*VoteIdentities, error) {
	// a record without a mover must be rejected before any lookup; creating
	// on miss would otherwise mint a person with an empty name
	if vote.Mover == "" {
		return nil, errors.New("vote record has no mover")
	}

	moverID, err := r.ResolvePerson(vote.Mover)
	if err != nil {
		return nil, err
	}

	var voters []string
	seen := make(map[string]struct{})
	for _, label := range vote.TypeOrder {
		for _, voter := range vote.ByType[label] {
			if _, ok := seen[voter]; ok {
				continue
			}
			seen[voter] = struct{}{}
			voters = append(voters, voter)
		}
	}
	people, err := r.resolvePeople(voters)
	if err != nil {
		return nil, err
	}

	voteTypes, err := r.resolveVoteTypes(vote.TypeOrder)
	if err != nil {
		return nil, err
	}

	return &VoteIdentities{
		MoverID:   moverID,
		People:    people,
		VoteTypes: voteTypes,
	}, nil
}
