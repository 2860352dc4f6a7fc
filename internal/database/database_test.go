package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

func TestMigrate_SessionBookingUniqueIndex(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	booking := domain.Booking{
		ListingID:       1,
		MentorProfileID: 3,
		MenteeUserID:    11,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		Status:          domain.BookingAccepted,
	}
	require.NoError(t, db.Create(&booking).Error)

	first := domain.Session{
		BookingID:       booking.ID,
		MentorProfileID: booking.MentorProfileID,
		MenteeUserID:    booking.MenteeUserID,
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		Status:          domain.SessionScheduled,
	}
	require.NoError(t, db.Create(&first).Error)

	second := first
	second.ID = 0
	err = db.Create(&second).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&domain.Session{}).Where("booking_id = ?", booking.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
