package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentorhub/internal/domain"
)

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 901
	}
	return args.Error(0)
}

func (m *mockPaymentRepo) GetByInvID(ctx context.Context, invID int64) (*domain.Payment, error) {
	args := m.Called(ctx, invID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) MarkPaidIf(ctx context.Context, paymentID int64, at time.Time) (int64, error) {
	args := m.Called(ctx, paymentID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPaymentRepo) MarkFailed(ctx context.Context, paymentID int64) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *mockPaymentRepo) ListByMentee(ctx context.Context, menteeUserID int64, limit, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, menteeUserID, limit, offset)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type mockBookingReader struct {
	mock.Mock
}

func (m *mockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
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

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyPaymentReceived(ctx context.Context, mentorUserID, bookingID int64, amount float64) error {
	args := m.Called(ctx, mentorUserID, bookingID, amount)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}

type paymentMocks struct {
	payments *mockPaymentRepo
	bookings *mockBookingReader
	listings *mockListingReader
	mentors  *mockMentorReader
	notifier *mockNotifier
	pub      *mockPublisher
}

func newTestService() (*Service, *paymentMocks) {
	m := &paymentMocks{
		payments: new(mockPaymentRepo),
		bookings: new(mockBookingReader),
		listings: new(mockListingReader),
		mentors:  new(mockMentorReader),
		notifier: new(mockNotifier),
		pub:      new(mockPublisher),
	}
	svc := NewService(m.payments, m.bookings, m.listings, m.mentors, m.notifier, m.pub, "pay-secret", zap.NewNop())
	return svc, m
}

func acceptedBooking() *domain.Booking {
	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:              42,
		ListingID:       7,
		MentorProfileID: 3,
		MenteeUserID:    11,
		StartTime:       start,
		EndTime:         start.Add(90 * time.Minute),
		Status:          domain.BookingAccepted,
	}
}

func TestInit_Success(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := acceptedBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)
	m.payments.On("GetByBookingID", ctx, b.ID).Return(nil, gorm.ErrRecordNotFound)
	m.listings.On("GetByID", ctx, b.ListingID).Return(&domain.Listing{ID: 7, PricePerHour: 60}, nil)
	m.payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

	resp, err := svc.Init(ctx, 11, InitPaymentRequest{BookingID: b.ID})

	require.NoError(t, err)
	assert.Equal(t, int64(901), resp.PaymentID)
	assert.InDelta(t, 90.0, resp.Amount, 0.001) // 1.5h at 60/h
	assert.NotEmpty(t, resp.Signature)
	assert.NotZero(t, resp.InvID)
}

func TestInit_Idempotent(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := acceptedBooking()
	existing := &domain.Payment{ID: 900, BookingID: b.ID, MenteeUserID: 11, Amount: 90, InvID: 12345, Status: domain.PaymentPending}

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)
	m.payments.On("GetByBookingID", ctx, b.ID).Return(existing, nil)

	resp, err := svc.Init(ctx, 11, InitPaymentRequest{BookingID: b.ID})

	require.NoError(t, err)
	assert.Equal(t, int64(900), resp.PaymentID)
	m.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInit_NotOwnBooking(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := acceptedBooking()

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)

	_, err := svc.Init(ctx, 99, InitPaymentRequest{BookingID: b.ID})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestInit_BookingNotAccepted(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := acceptedBooking()
	b.Status = domain.BookingRequested

	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)

	_, err := svc.Init(ctx, 11, InitPaymentRequest{BookingID: b.ID})

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCallback_MarksPaid(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	b := acceptedBooking()
	p := &domain.Payment{ID: 901, BookingID: b.ID, MenteeUserID: 11, Amount: 90, InvID: 12345, Status: domain.PaymentPending}

	m.payments.On("GetByInvID", ctx, p.InvID).Return(p, nil)
	m.payments.On("MarkPaidIf", ctx, p.ID, mock.Anything).Return(int64(1), nil)
	m.bookings.On("GetByID", ctx, b.ID).Return(b, nil)
	m.mentors.On("GetByID", ctx, b.MentorProfileID).Return(&domain.MentorProfile{ID: 3, UserID: 2}, nil)
	m.notifier.On("NotifyPaymentReceived", ctx, int64(2), b.ID, p.Amount).Return(nil)
	m.pub.On("Publish", "payment.received", mock.Anything).Return(nil)

	err := svc.HandleCallback(ctx, CallbackRequest{
		InvID:     p.InvID,
		Amount:    p.Amount,
		Signature: svc.signature(p.Amount, p.InvID),
	})

	require.NoError(t, err)
	m.payments.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func TestCallback_BadSignature(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	p := &domain.Payment{ID: 901, BookingID: 42, MenteeUserID: 11, Amount: 90, InvID: 12345, Status: domain.PaymentPending}

	m.payments.On("GetByInvID", ctx, p.InvID).Return(p, nil)

	err := svc.HandleCallback(ctx, CallbackRequest{
		InvID:     p.InvID,
		Amount:    p.Amount,
		Signature: "deadbeef",
	})

	assert.ErrorIs(t, err, ErrInvalidSignature)
	m.payments.AssertNotCalled(t, "MarkPaidIf", mock.Anything, mock.Anything, mock.Anything)
}

func TestCallback_ReplayIsNoop(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	p := &domain.Payment{ID: 901, BookingID: 42, MenteeUserID: 11, Amount: 90, InvID: 12345, Status: domain.PaymentPaid}

	m.payments.On("GetByInvID", ctx, p.InvID).Return(p, nil)
	m.payments.On("MarkPaidIf", ctx, p.ID, mock.Anything).Return(int64(0), nil)

	err := svc.HandleCallback(ctx, CallbackRequest{
		InvID:     p.InvID,
		Amount:    p.Amount,
		Signature: svc.signature(p.Amount, p.InvID),
	})

	require.NoError(t, err)
	m.notifier.AssertNotCalled(t, "NotifyPaymentReceived", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetForBooking_HidesForeignPayment(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	p := &domain.Payment{ID: 901, BookingID: 42, MenteeUserID: 11}

	m.payments.On("GetByBookingID", ctx, int64(42)).Return(p, nil)

	_, err := svc.GetForBooking(ctx, 99, 42)

	assert.ErrorIs(t, err, ErrNotFound)
}
