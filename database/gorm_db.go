package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/civicarchive/models"
)

// voteViewDDL is a derived, read-only reporting view: for each
// (resolution, vote type) it lists the comma-joined voter names.
// It is a query convenience and is never consumed by the crawl pipeline.
const voteViewDDL = `
CREATE VIEW IF NOT EXISTS resolution_votes_view AS
SELECT
    rv.resolution_id,
    vt.name AS vote_type,
    GROUP_CONCAT(p.name, ', ') AS voter_names
FROM resolutionVotes rv
JOIN personVotes pv ON rv.id = pv.resolution_vote_id
JOIN voteTypes vt ON pv.vote_type_id = vt.id
JOIN people p ON pv.person_id = p.id
GROUP BY
    rv.resolution_id,
    vt.name;
`

// InitGormDB initializes and returns a GORM database instance
func InitGormDB(dataSourceName string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("GORM Database initialized successfully at", dataSourceName)
	return db, nil
}

// AutoMigrateModels can be called after InitGormDB to migrate schemas.
// It also installs the resolution_votes_view reporting view.
func AutoMigrateModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Person{},
		&models.VoteType{},
		&models.Resolution{},
		&models.ResolutionAttachment{},
		&models.ResolutionCustomSection{},
		&models.ResolutionFunction{},
		&models.ResolutionMeeting{},
		&models.ResolutionVote{},
		&models.PersonVote{},
	)
	if err != nil {
		return fmt.Errorf("GORM AutoMigrate failed: %w", err)
	}

	if err := db.Exec(voteViewDDL).Error; err != nil {
		return fmt.Errorf("failed to create resolution_votes_view: %w", err)
	}

	log.Println("GORM AutoMigrate completed successfully.")
	return nil
}
