package booking

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatusIf(ctx context.Context, tx *gorm.DB, bookingID int64, expected, next domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, tx, bookingID, expected, next)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) HasOverlap(ctx context.Context, mentorProfileID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, mentorProfileID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) ListByMentee(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, menteeUserID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByMentor(ctx context.Context, mentorProfileID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, mentorProfileID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	m.Called(ctx)
	return fn(nil)
}

type mockSessionCreator struct {
	mock.Mock
}

func (m *mockSessionCreator) Create(ctx context.Context, tx *gorm.DB, s *domain.Session) error {
	args := m.Called(ctx, tx, s)
	if args.Error(0) == nil {
		s.ID = 501
	}
	return args.Error(0)
}

type mockListingReader struct {
	mock.Mock
}

func (m *mockListingReader) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type mockMentorReader struct {
	mock.Mock
}

func (m *mockMentorReader) GetByID(ctx context.Context, id int64) (*domain.MentorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MentorProfile), args.Error(1)
}

type mockAvailabilityChecker struct {
	mock.Mock
}

func (m *mockAvailabilityChecker) IsBookable(ctx context.Context, mentorProfileID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, mentorProfileID, start, end)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyBookingRequested(ctx context.Context, mentorUserID, bookingID int64, start time.Time) error {
	args := m.Called(ctx, mentorUserID, bookingID, start)
	return args.Error(0)
}

func (m *mockNotifier) NotifyBookingAccepted(ctx context.Context, menteeUserID, bookingID, sessionID int64) error {
	args := m.Called(ctx, menteeUserID, bookingID, sessionID)
	return args.Error(0)
}

func (m *mockNotifier) NotifyBookingDeclined(ctx context.Context, menteeUserID, bookingID int64) error {
	args := m.Called(ctx, menteeUserID, bookingID)
	return args.Error(0)
}

func (m *mockNotifier) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64) error {
	args := m.Called(ctx, userID, bookingID)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}

type serviceMocks struct {
	bookings     *mockBookingRepo
	sessions     *mockSessionCreator
	listings     *mockListingReader
	mentors      *mockMentorReader
	availability *mockAvailabilityChecker
	notifier     *mockNotifier
	publisher    *mockPublisher
}

func newTestService() (*Service, *serviceMocks) {
	m := &serviceMocks{
		bookings:     new(mockBookingRepo),
		sessions:     new(mockSessionCreator),
		listings:     new(mockListingReader),
		mentors:      new(mockMentorReader),
		availability: new(mockAvailabilityChecker),
		notifier:     new(mockNotifier),
		publisher:    new(mockPublisher),
	}
	svc := NewService(m.bookings, m.sessions, m.listings, m.mentors, m.availability, m.notifier, m.publisher, zap.NewNop())
	return svc, m
}

func pendingBooking() *domain.Booking {
	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Minute)
	return &domain.Booking{
		ID:              42,
		ListingID:       7,
		MentorProfileID: 3,
		MenteeUserID:    11,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		Status:          domain.BookingRequested,
	}
}

func TestCreate_Success(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Minute)
	listing := &domain.Listing{ID: 7, MentorProfileID: 3, DurationMinutes: 60, IsActive: true}
	end := start.Add(time.Hour)

	m.listings.On("GetByID", ctx, int64(7)).Return(listing, nil)
	m.mentors.On("GetByID", ctx, int64(3)).Return(&domain.MentorProfile{ID: 3, UserID: 2}, nil)
	m.availability.On("IsBookable", ctx, int64(3), start, end).Return(true, nil)
	m.bookings.On("HasOverlap", ctx, int64(3), start, end).Return(false, nil)
	m.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	m.notifier.On("NotifyBookingRequested", ctx, int64(2), mock.Anything, start).Return(nil)
	m.publisher.On("Publish", "booking.requested", mock.Anything).Return(nil)

	b, err := svc.Create(ctx, 11, CreateBookingRequest{ListingID: 7, StartTime: start})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingRequested, b.Status)
	assert.Equal(t, int64(3), b.MentorProfileID)
	assert.Equal(t, int64(11), b.MenteeUserID)
	assert.Equal(t, end, b.EndTime)
	m.bookings.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func TestCreate_InactiveListing(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.listings.On("GetByID", ctx, int64(7)).Return(&domain.Listing{ID: 7, IsActive: false}, nil)

	_, err := svc.Create(ctx, 11, CreateBookingRequest{
		ListingID: 7,
		StartTime: time.Now().Add(24 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrValidation)
	m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_OwnListing(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.listings.On("GetByID", ctx, int64(7)).Return(&domain.Listing{ID: 7, MentorProfileID: 3, DurationMinutes: 60, IsActive: true}, nil)
	m.mentors.On("GetByID", ctx, int64(3)).Return(&domain.MentorProfile{ID: 3, UserID: 11}, nil)

	_, err := svc.Create(ctx, 11, CreateBookingRequest{
		ListingID: 7,
		StartTime: time.Now().Add(24 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_StartInPast(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.listings.On("GetByID", ctx, int64(7)).Return(&domain.Listing{ID: 7, MentorProfileID: 3, DurationMinutes: 60, IsActive: true}, nil)
	m.mentors.On("GetByID", ctx, int64(3)).Return(&domain.MentorProfile{ID: 3, UserID: 2}, nil)

	_, err := svc.Create(ctx, 11, CreateBookingRequest{
		ListingID: 7,
		StartTime: time.Now().Add(-time.Hour),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_OutsideAvailability(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.listings.On("GetByID", ctx, int64(7)).Return(&domain.Listing{ID: 7, MentorProfileID: 3, DurationMinutes: 60, IsActive: true}, nil)
	m.mentors.On("GetByID", ctx, int64(3)).Return(&domain.MentorProfile{ID: 3, UserID: 2}, nil)
	m.availability.On("IsBookable", ctx, int64(3), mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.Create(ctx, 11, CreateBookingRequest{
		ListingID: 7,
		StartTime: time.Now().Add(24 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
	m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_SlotTaken(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.listings.On("GetByID", ctx, int64(7)).Return(&domain.Listing{ID: 7, MentorProfileID: 3, DurationMinutes: 60, IsActive: true}, nil)
	m.mentors.On("GetByID", ctx, int64(3)).Return(&domain.MentorProfile{ID: 3, UserID: 2}, nil)
	m.availability.On("IsBookable", ctx, int64(3), mock.Anything, mock.Anything).Return(true, nil)
	m.bookings.On("HasOverlap", ctx, int64(3), mock.Anything, mock.Anything).Return(true, nil)

	_, err := svc.Create(ctx, 11, CreateBookingRequest{
		ListingID: 7,
		StartTime: time.Now().Add(24 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
	m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_StoreRejectsOverlap(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.listings.On("GetByID", ctx, int64(7)).Return(&domain.Listing{ID: 7, MentorProfileID: 3, DurationMinutes: 60, IsActive: true}, nil)
	m.mentors.On("GetByID", ctx, int64(3)).Return(&domain.MentorProfile{ID: 3, UserID: 2}, nil)
	m.availability.On("IsBookable", ctx, int64(3), mock.Anything, mock.Anything).Return(true, nil)
	// The overlap read sees nothing, but a concurrent insert wins the race and
	// the exclusion constraint rejects this one.
	m.bookings.On("HasOverlap", ctx, int64(3), mock.Anything, mock.Anything).Return(false, nil)
	m.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Return(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"})

	_, err := svc.Create(ctx, 11, CreateBookingRequest{
		ListingID: 7,
		StartTime: time.Now().Add(24 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
	m.notifier.AssertNotCalled(t, "NotifyBookingRequested", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccept_CreatesScheduledSession(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)
	m.bookings.On("Transaction", ctx).Return(nil)
	m.bookings.On("UpdateStatusIf", ctx, mock.Anything, b.ID, domain.BookingRequested, domain.BookingAccepted).
		Return(int64(1), nil)
	m.sessions.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)
	m.notifier.On("NotifyBookingAccepted", ctx, b.MenteeUserID, b.ID, int64(501)).Return(nil)
	m.publisher.On("Publish", "booking.accepted", mock.Anything).Return(nil)

	accepted, session, err := svc.Accept(ctx, b.ID, Actor{UserID: 2, MentorProfileID: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, accepted.Status)
	require.NotNil(t, session)
	assert.Equal(t, domain.SessionScheduled, session.Status)
	assert.Equal(t, b.ID, session.BookingID)
	assert.Equal(t, b.MentorProfileID, session.MentorProfileID)
	assert.Equal(t, b.MenteeUserID, session.MenteeUserID)
	assert.Equal(t, b.StartTime, session.StartTime)
	assert.Equal(t, b.EndTime, session.EndTime)
	m.sessions.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func TestAccept_NotOwningMentor(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)

	_, _, err := svc.Accept(ctx, b.ID, Actor{UserID: 99, MentorProfileID: 8})

	assert.ErrorIs(t, err, ErrForbidden)
	m.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccept_WithoutMentorProfile(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)

	_, _, err := svc.Accept(ctx, b.ID, Actor{UserID: b.MenteeUserID})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAccept_AlreadyDeclined(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()
	b.Status = domain.BookingDeclined

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)

	_, _, err := svc.Accept(ctx, b.ID, Actor{UserID: 2, MentorProfileID: 3})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	m.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccept_LostRace(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)
	m.bookings.On("Transaction", ctx).Return(nil)
	// Someone else flipped the status between the read and the update.
	m.bookings.On("UpdateStatusIf", ctx, mock.Anything, b.ID, domain.BookingRequested, domain.BookingAccepted).
		Return(int64(0), nil)

	_, _, err := svc.Accept(ctx, b.ID, Actor{UserID: 2, MentorProfileID: 3})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	m.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	m.notifier.AssertNotCalled(t, "NotifyBookingAccepted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccept_DuplicateSessionRejectedByStore(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)
	m.bookings.On("Transaction", ctx).Return(nil)
	m.bookings.On("UpdateStatusIf", ctx, mock.Anything, b.ID, domain.BookingRequested, domain.BookingAccepted).
		Return(int64(1), nil)
	// The unique index on sessions.booking_id fires; the transaction rolls the
	// booking update back with it.
	m.sessions.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.Session")).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_sessions_booking_id"})

	_, _, err := svc.Accept(ctx, b.ID, Actor{UserID: 2, MentorProfileID: 3})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	m.notifier.AssertNotCalled(t, "NotifyBookingAccepted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccept_DuplicateSessionOnSqlite(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)
	m.bookings.On("Transaction", ctx).Return(nil)
	m.bookings.On("UpdateStatusIf", ctx, mock.Anything, b.ID, domain.BookingRequested, domain.BookingAccepted).
		Return(int64(1), nil)
	m.sessions.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.Session")).
		Return(gorm.ErrDuplicatedKey)

	_, _, err := svc.Accept(ctx, b.ID, Actor{UserID: 2, MentorProfileID: 3})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestAccept_NotFound(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.bookings.On("GetByID", ctx, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Accept(ctx, 404, Actor{UserID: 2, MentorProfileID: 3})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecline_Success(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)
	m.bookings.On("UpdateStatusIf", ctx, (*gorm.DB)(nil), b.ID, domain.BookingRequested, domain.BookingDeclined).
		Return(int64(1), nil)
	m.notifier.On("NotifyBookingDeclined", ctx, b.MenteeUserID, b.ID).Return(nil)
	m.publisher.On("Publish", "booking.declined", mock.Anything).Return(nil)

	declined, err := svc.Decline(ctx, b.ID, Actor{UserID: 2, MentorProfileID: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingDeclined, declined.Status)
	m.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_ByMentee(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)
	m.bookings.On("UpdateStatusIf", ctx, (*gorm.DB)(nil), b.ID, domain.BookingRequested, domain.BookingCancelled).
		Return(int64(1), nil)
	m.mentors.On("GetByID", ctx, b.MentorProfileID).Return(&domain.MentorProfile{ID: 3, UserID: 2}, nil)
	m.notifier.On("NotifyBookingCancelled", ctx, int64(2), b.ID).Return(nil)
	m.publisher.On("Publish", "booking.cancelled", mock.Anything).Return(nil)

	cancelled, err := svc.Cancel(ctx, b.ID, Actor{UserID: b.MenteeUserID})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	m.notifier.AssertExpectations(t)
}

func TestCancel_ByMentor(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)
	m.bookings.On("UpdateStatusIf", ctx, (*gorm.DB)(nil), b.ID, domain.BookingRequested, domain.BookingCancelled).
		Return(int64(1), nil)
	m.notifier.On("NotifyBookingCancelled", ctx, b.MenteeUserID, b.ID).Return(nil)
	m.publisher.On("Publish", "booking.cancelled", mock.Anything).Return(nil)

	cancelled, err := svc.Cancel(ctx, b.ID, Actor{UserID: 2, MentorProfileID: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
}

func TestCancel_Outsider(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)

	_, err := svc.Cancel(ctx, b.ID, Actor{UserID: 77})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_AlreadyAccepted(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()
	b.Status = domain.BookingAccepted

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)

	_, err := svc.Cancel(ctx, b.ID, Actor{UserID: b.MenteeUserID})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestGetForActor_HidesForeignBooking(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)

	_, err := svc.GetForActor(ctx, b.ID, Actor{UserID: 77, MentorProfileID: 9})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetForActor_MenteeSeesOwn(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := pendingBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)

	got, err := svc.GetForActor(ctx, b.ID, Actor{UserID: b.MenteeUserID})

	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}
