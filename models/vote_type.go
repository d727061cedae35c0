package models

// VoteType holds types of votes, such as "aye", "nay", "abstain", etc.
// Labels are taken verbatim from the source document's field names and are
// not deduplicated against any canonical list: every distinct string becomes
// a distinct row, typos included.
type VoteType struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null;unique" json:"name"`
}

// TableName explicitly sets the table name for GORM.
func (VoteType) TableName() string {
	return "voteTypes"
}
