package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// VoteTally is one row of resolution_votes_view: every voter who cast a
// given vote type on a given resolution, names comma-joined by the view.
type VoteTally struct {
	ResolutionID int64  `json:"resolution_id"`
	VoteType     string `json:"vote_type"`
	VoterNames   string `json:"voter_names"`
}

// GetVoteTallies retrieves the per-vote-type voter lists for one resolution
// from the reporting view.
func GetVoteTallies(db *sql.DB, resolutionID int64) ([]VoteTally, error) {
	queryBuilder := psql.Select("resolution_id", "vote_type", "voter_names").
		From("resolution_votes_view").
		Where(sq.Eq{"resolution_id": resolutionID}).
		OrderBy("vote_type ASC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for GetVoteTallies: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote tallies for resolution %d: %w", resolutionID, err)
	}
	defer rows.Close()

	var tallies []VoteTally
	for rows.Next() {
		var t VoteTally
		if err := rows.Scan(&t.ResolutionID, &t.VoteType, &t.VoterNames); err != nil {
			return nil, fmt.Errorf("failed to scan vote tally row: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote tally rows: %w", err)
	}
	return tallies, nil
}
