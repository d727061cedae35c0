package models

import "time"

// ResolutionMeeting is one entry of a resolution's meeting history, ordered
// oldest to newest as it appears in the source document. It is paired
// positionally with one ResolutionVote. MeetingID is extracted best-effort
// from the portal's links and may be absent.
type ResolutionMeeting struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ResolutionID int64     `gorm:"not null;index" json:"resolution_id"`
	MeetingID    *int64    `gorm:"" json:"meeting_id,omitempty"` // Nullable
	Kind         string    `gorm:"not null" json:"kind"`         // eg. "Town Board - Regular"
	Timestamp    time.Time `gorm:"not null" json:"timestamp"`
}

func (ResolutionMeeting) TableName() string {
	return "resolutionMeetings"
}

// ResolutionVote is one roll-call voting event on a resolution. The mover is
// an identity reference into the people table and must exist before the vote
// record is persisted.
type ResolutionVote struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ResolutionID int64  `gorm:"not null;index" json:"resolution_id"`
	Result       string `gorm:"not null" json:"result"`
	MoverID      uint   `gorm:"not null" json:"mover_id"`

	PersonVotes []PersonVote `gorm:"foreignKey:ResolutionVoteID;constraint:OnDelete:CASCADE" json:"person_votes,omitempty"`
}

func (ResolutionVote) TableName() string {
	return "resolutionVotes"
}

// PersonVote associates one person, one voting event, and their vote type.
// Composite primary key of person_id and resolution_vote_id, since a person
// can only vote once per voting event.
type PersonVote struct {
	PersonID         uint `gorm:"primaryKey;autoIncrement:false" json:"person_id"`
	ResolutionVoteID uint `gorm:"primaryKey;autoIncrement:false" json:"resolution_vote_id"`
	VoteTypeID       uint `gorm:"not null" json:"vote_type_id"`
}

func (PersonVote) TableName() string {
	return "personVotes"
}
