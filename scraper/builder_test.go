package scraper

import (
	"testing"
	"time"
)

func TestBuildResolutionAssemblesAggregate(t *testing.T) {
	body := "full text"
	meetingID := int64(2145)
	parsed := &ParsedResolution{
		ID:         29176,
		Name:       "2019-456",
		Type:       "Resolution",
		Title:      "Authorize Purchase",
		Department: "Highway",
		Category:   "Equipment",
		Functions:  []string{"Zoning", "Budget"},
		Body:       &body,
		CustomSections: []ParsedSection{
			{Name: "Financial Impact", Content: "Estimated cost"},
		},
		Attachments: []ParsedAttachment{
			{Path: "/files/1", Title: "Exhibit 1"},
		},
		Meetings: []ParsedMeeting{
			{MeetingID: &meetingID, Kind: "Town Board - Regular Meeting", Timestamp: time.Date(2019, 7, 15, 19, 0, 0, 0, time.UTC)},
		},
	}

	tally := NormalizedVote{
		Result:    "Passed",
		Mover:     "Smith",
		TypeOrder: []string{"aye", "nay"},
		ByType: map[string][]string{
			"aye": {"Smith", "Jones"},
			"nay": {"Marinelli"},
		},
	}
	identities := &VoteIdentities{
		MoverID:   1,
		People:    map[string]uint{"Smith": 1, "Jones": 2, "Marinelli": 3},
		VoteTypes: map[string]uint{"aye": 1, "nay": 2},
	}

	resolution, err := BuildResolution(parsed, []NormalizedVote{tally}, []*VoteIdentities{identities})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if resolution.ID != 29176 || resolution.Name != "2019-456" {
		t.Errorf("unexpected header fields: %d %q", resolution.ID, resolution.Name)
	}
	if len(resolution.Functions) != 2 || len(resolution.CustomSections) != 1 || len(resolution.Attachments) != 1 {
		t.Errorf("unexpected child counts: %d functions, %d sections, %d attachments",
			len(resolution.Functions), len(resolution.CustomSections), len(resolution.Attachments))
	}
	if len(resolution.Meetings) != 1 || len(resolution.Votes) != 1 {
		t.Fatalf("expected one meeting paired with one vote, got %d/%d", len(resolution.Meetings), len(resolution.Votes))
	}

	vote := resolution.Votes[0]
	if vote.Result != "Passed" || vote.MoverID != 1 {
		t.Errorf("unexpected vote: %+v", vote)
	}
	if len(vote.PersonVotes) != 3 {
		t.Fatalf("expected 3 person votes, got %d", len(vote.PersonVotes))
	}
	for _, pv := range vote.PersonVotes {
		if pv.PersonID == 0 || pv.VoteTypeID == 0 {
			t.Errorf("person vote references unmaterialized identity: %+v", pv)
		}
	}
}

func TestBuildResolutionCollapsesDuplicatePersonVotes(t *testing.T) {
	parsed := &ParsedResolution{
		ID:       1,
		Meetings: []ParsedMeeting{{Kind: "Town Board - Regular", Timestamp: time.Now()}},
	}
	tally := NormalizedVote{
		Result:    "Passed",
		Mover:     "Smith",
		TypeOrder: []string{"aye", "nay"},
		ByType: map[string][]string{
			"aye": {"Smith"},
			"nay": {"Smith"}, // same person twice in one voting event
		},
	}
	identities := &VoteIdentities{
		MoverID:   1,
		People:    map[string]uint{"Smith": 1},
		VoteTypes: map[string]uint{"aye": 1, "nay": 2},
	}

	resolution, err := BuildResolution(parsed, []NormalizedVote{tally}, []*VoteIdentities{identities})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	votes := resolution.Votes[0].PersonVotes
	if len(votes) != 1 {
		t.Fatalf("expected duplicate (person, vote) pair to collapse, got %d person votes", len(votes))
	}
	if votes[0].VoteTypeID != 1 {
		t.Errorf("expected first occurrence to win, got vote type %d", votes[0].VoteTypeID)
	}
}

func TestBuildResolutionCountMismatch(t *testing.T) {
	parsed := &ParsedResolution{
		ID:       1,
		Meetings: []ParsedMeeting{{Kind: "A", Timestamp: time.Now()}, {Kind: "B", Timestamp: time.Now()}},
	}

	_, err := BuildResolution(parsed, []NormalizedVote{{}}, []*VoteIdentities{{}})
	if err == nil {
		t.Fatal("expected error on mismatched meeting/tally counts")
	}
}

func TestBuildResolutionUnresolvedVoterFails(t *testing.T) {
	parsed := &ParsedResolution{
		ID:       1,
		Meetings: []ParsedMeeting{{Kind: "A", Timestamp: time.Now()}},
	}
	tally := NormalizedVote{
		Mover:     "Smith",
		TypeOrder: []string{"aye"},
		ByType:    map[string][]string{"aye": {"Ghost"}},
	}
	identities := &VoteIdentities{
		MoverID:   1,
		People:    map[string]uint{"Smith": 1},
		VoteTypes: map[string]uint{"aye": 1},
	}

	if _, err := BuildResolution(parsed, []NormalizedVote{tally}, []*VoteIdentities{identities}); err == nil {
		t.Fatal("expected error for voter missing from resolved identities")
	}
}
