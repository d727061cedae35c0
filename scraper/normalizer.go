package scraper

import "strings"

// NormalizedVote is one vote-record table reduced to its tally: the result
// string, the bare mover name, and the ordered voter lists per vote-type
// label. Labels keep first-seen order; a repeated label overwrites its
// earlier bucket (last write wins), matching the source data's behavior.
type NormalizedVote struct {
	Result    string
	Mover     string
	TypeOrder []string
	ByType    map[string][]string
}

// NormalizeVoteRecord classifies the rows of one vote-record table. Label
// text is colon-stripped and lower-cased to select a bucket: 'result' and
// 'mover' are scalar fields, 'seconder' is recognized and discarded, and
// every other label is a custom vote type whose value is a ', '-separated
// voter list.
func NormalizeVoteRecord(rows []VoteRow) NormalizedVote {
	vote := NormalizedVote{ByType: make(map[string][]string)}

	for _, row := range rows {
		label := strings.ToLower(strings.ReplaceAll(row.Label, ":", ""))

		switch label {
		case "result":
			vote.Result = row.Value
		case "mover":
			// the field reads "Name, Title"; trailing tokens are presumed
			// titles and dropped
			vote.Mover = strings.SplitN(row.Value, ", ", 2)[0]
		case "seconder":
			// not modeled
		default:
			if _, seen := vote.ByType[label]; !seen {
				vote.TypeOrder = append(vote.TypeOrder, label)
			}
			vote.ByType[label] = splitVoters(row.Value)
		}
	}
	return vote
}

// splitVoters splits a ', '-separated name list; an empty value is an empty
// list, not a single empty name.
func splitVoters(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ", ")
}
