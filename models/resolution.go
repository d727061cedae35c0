package models

// Resolution represents one legislative item in the database using GORM.
// It corresponds to the 'resolutions' table and is the aggregate root:
// every child record below is created and deleted with its resolution.
// The ID is assigned by the source records portal, never generated here.
type Resolution struct {
	ID         int64   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name       string  `gorm:"not null;unique" json:"name"`
	Type       string  `gorm:"not null" json:"type"`
	Title      string  `gorm:"not null" json:"title"`
	Department string  `gorm:"" json:"department,omitempty"`
	Category   string  `gorm:"" json:"category,omitempty"`
	Body       *string `gorm:"type:text" json:"body,omitempty"` // Nullable, only fetched on request

	// Relationships
	Attachments    []ResolutionAttachment    `gorm:"foreignKey:ResolutionID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
	CustomSections []ResolutionCustomSection `gorm:"foreignKey:ResolutionID;constraint:OnDelete:CASCADE" json:"custom_sections,omitempty"`
	Functions      []ResolutionFunction      `gorm:"foreignKey:ResolutionID;constraint:OnDelete:CASCADE" json:"functions,omitempty"`
	Meetings       []ResolutionMeeting       `gorm:"foreignKey:ResolutionID;constraint:OnDelete:CASCADE" json:"meetings,omitempty"`
	Votes          []ResolutionVote          `gorm:"foreignKey:ResolutionID;constraint:OnDelete:CASCADE" json:"votes,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Resolution) TableName() string {
	return "resolutions"
}

// ResolutionAttachment is a downloadable file linked from a resolution page.
type ResolutionAttachment struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ResolutionID int64  `gorm:"not null;index" json:"resolution_id"`
	Path         string `gorm:"not null" json:"path"`
	Title        string `gorm:"not null" json:"title"`
}

func (ResolutionAttachment) TableName() string {
	return "resolutionAttachments"
}

// ResolutionCustomSection holds any narrative section of the source document
// that is not one of the well-known sections handled by dedicated parsing.
type ResolutionCustomSection struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ResolutionID int64  `gorm:"not null;index" json:"resolution_id"`
	Name         string `gorm:"not null" json:"name"`
	Content      string `gorm:"not null;type:text" json:"content"`
}

func (ResolutionCustomSection) TableName() string {
	return "resolutionCustomSections"
}

// ResolutionFunction is one tag from the multi-value Functions row of the
// information table.
type ResolutionFunction struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ResolutionID int64  `gorm:"not null;index" json:"resolution_id"`
	Name         string `gorm:"not null" json:"name"`
}

func (ResolutionFunction) TableName() string {
	return "resolutionFunctions"
}
