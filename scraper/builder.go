package scraper

import (
	"fmt"

	"github.com/camden-git/civicarchive/models"
)

// BuildResolution assembles the final Resolution aggregate from the parsed
// IR, the per-meeting vote tallies and their resolved identities, ready for
// a single atomic persist. tallies and identities are aligned positionally
// with parsed.Meetings; a length mismatch means an upstream bug, not bad
// input data.
func BuildResolution(parsed *ParsedResolution, tallies []NormalizedVote, identities []*VoteIdentities) (*models.Resolution, error) {
	if len(tallies) != len(parsed.Meetings) || len(identities) != len(parsed.Meetings) {
		return nil, fmt.Errorf("resolution %d: %d meetings but %d tallies and %d identity sets",
			parsed.ID, len(parsed.Meetings), len(tallies), len(identities))
	}

	resolution := &models.Resolution{
		ID:         parsed.ID,
		Name:       parsed.Name,
		Type:       parsed.Type,
		Title:      parsed.Title,
		Department: parsed.Department,
		Category:   parsed.Category,
		Body:       parsed.Body,
	}

	for _, attachment := range parsed.Attachments {
		resolution.Attachments = append(resolution.Attachments, models.ResolutionAttachment{
			Path:  attachment.Path,
			Title: attachment.Title,
		})
	}
	for _, section := range parsed.CustomSections {
		resolution.CustomSections = append(resolution.CustomSections, models.ResolutionCustomSection{
			Name:    section.Name,
			Content: section.Content,
		})
	}
	for _, function := range parsed.Functions {
		resolution.Functions = append(resolution.Functions, models.ResolutionFunction{
			Name: function,
		})
	}

	for i, meeting := range parsed.Meetings {
		resolution.Meetings = append(resolution.Meetings, models.ResolutionMeeting{
			MeetingID: meeting.MeetingID,
			Kind:      meeting.Kind,
			Timestamp: meeting.Timestamp,
		})

		vote, err := buildVote(parsed.ID, tallies[i], identities[i])
		if err != nil {
			return nil, err
		}
		resolution.Votes = append(resolution.Votes, vote)
	}

	return resolution, nil
}

// buildVote maps one tally onto vote and person-vote records. A person
// votes at most once per voting event; if a name somehow lands in more than
// one bucket of the same record, the first occurrence wins so the composite
// (person, vote) key holds.
func buildVote(resolutionID int64, tally NormalizedVote, identities *VoteIdentities) (models.ResolutionVote, error) {
	vote := models.ResolutionVote{
		Result:  tally.Result,
		MoverID: identities.MoverID,
	}

	voted := make(map[uint]struct{})
	for _, label := range tally.TypeOrder {
		voteTypeID, ok := identities.VoteTypes[label]
		if !ok {
			return vote, fmt.Errorf("resolution %d: vote type %q was never resolved", resolutionID, label)
		}
		for _, voter := range tally.ByType[label] {
			personID, ok := identities.People[voter]
			if !ok {
				return vote, fmt.Errorf("resolution %d: voter %q was never resolved", resolutionID, voter)
			}
			if _, already := voted[personID]; already {
				continue
			}
			voted[personID] = struct{}{}
			vote.PersonVotes = append(vote.PersonVotes, models.PersonVote{
				PersonID:   personID,
				VoteTypeID: voteTypeID,
			})
		}
	}

	return vote, nil
}
