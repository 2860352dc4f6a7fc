package database

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"

	"mentorhub/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError maps driver duplicate-key failures to
	// gorm.ErrDuplicatedKey on both backends.
	cfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	// local development runs on sqlite
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate applies the schema. The unique index on sessions.booking_id enforces
// the one-session-per-booking invariant at the store level.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.MentorProfile{},
		&domain.Skill{},
		&domain.Listing{},
		&domain.AvailabilityRule{},
		&domain.TimeOff{},
		&domain.Booking{},
		&domain.Session{},
		&domain.Payment{},
		&domain.Review{},
		&domain.Notification{},
	); err != nil {
		return err
	}
	return addBookingOverlapConstraint(db)
}

// addBookingOverlapConstraint installs the exclusion constraint that rejects
// overlapping active bookings for a mentor, so the repository overlap check
// has a store-level backstop under concurrent inserts. Sqlite has no
// exclusion constraints; local development relies on the repository check.
func addBookingOverlapConstraint(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}
	return db.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
				EXCLUDE USING gist (
					mentor_profile_id WITH =,
					tsrange(start_time, end_time) WITH &&
				) WHERE (status IN ('requested', 'accepted'));
		EXCEPTION
			WHEN duplicate_object THEN NULL;
			WHEN duplicate_table THEN NULL;
		END $$`).Error
}
