package models

// Person represents a mover or voter in the database using GORM.
// It corresponds to the 'people' table. The name is the sole resolution key:
// exact, case-sensitive string match against previously seen names.
// People are created lazily on first sight and never updated or deleted by
// the pipeline. Titles are deliberately not modeled; a person's title can
// change over time.
type Person struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null;unique" json:"name"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "people"
}
