package reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/flightservice/internal/cache"
	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) ReservedDays(ctx context.Context, q repository.Querier) ([]int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockReservationRepository) NextID(ctx context.Context, q repository.Querier) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) Insert(ctx context.Context, q repository.Querier, r *domain.Reservation) error {
	args := m.Called(ctx, q, r)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, q repository.Querier, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) SetPaid(ctx context.Context, q repository.Querier, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockReservationRepository) Delete(ctx context.Context, q repository.Querier, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListUnpaid(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Authenticate(ctx context.Context, username, password string) (bool, error) {
	args := m.Called(ctx, username, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Balance(ctx context.Context, q repository.Querier, username string) (int, error) {
	args := m.Called(ctx, q, username)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) UpdateBalance(ctx context.Context, q repository.Querier, username string, balance int) error {
	args := m.Called(ctx, q, username, balance)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

// stubTxRunner runs fn immediately with no transaction underneath, the way
// the real runner does after a successful begin.
type stubTxRunner struct {
	beginErr error
}

func (s *stubTxRunner) RunSerializable(ctx context.Context, fn func(q repository.Querier) error) error {
	if s.beginErr != nil {
		return s.beginErr
	}
	return fn(nil)
}

func directItinerary(day, capacity, price int) domain.Itinerary {
	return domain.NewDirectItinerary(0, domain.Flight{
		ID: 7, DayOfMonth: day, CarrierID: "DL", FlightNum: "42",
		OriginCity: "NYC", DestCity: "LA", Duration: 180, Capacity: capacity, Price: price,
	})
}

func newServiceForTest(resRepo *MockReservationRepository, users *MockUserRepository, producer *MockProducer) (*ReservationService, *cache.MemoryItineraryCache) {
	itineraries := cache.NewMemoryItineraryCache()
	service := NewReservationService(
		&stubTxRunner{}, resRepo, users, itineraries,
		WithProducer(producer, "reservation_events"),
	)
	return service, itineraries
}

func TestReservationService_Book_Success(t *testing.T) {
	resRepo := &MockReservationRepository{}
	users := &MockUserRepository{}
	producer := &MockProducer{}
	service, itineraries := newServiceForTest(resRepo, users, producer)

	ctx := context.Background()
	assert.NoError(t, itineraries.Replace(ctx, "s1", []domain.Itinerary{directItinerary(10, 5, 300)}))

	resRepo.On("ReservedDays", ctx, mock.Anything).Return([]int{}, nil).Once()
	resRepo.On("NextID", ctx, mock.Anything).Return(int64(1), nil).Once()
	resRepo.On("Insert", ctx, mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.ID == 1 && !r.Paid && r.Day == 10 && r.Price == 300 && r.Direct && len(r.Legs) == 1
	})).Return(nil).Once()
	producer.On("Publish", ctx, "reservation_events", "1", mock.Anything).Return(nil).Once()

	id, err := service.Book(ctx, "s1", 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)
	resRepo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestReservationService_Book_InvalidItinerary(t *testing.T) {
	resRepo := &MockReservationRepository{}
	service, _ := newServiceForTest(resRepo, &MockUserRepository{}, &MockProducer{})

	_, err := service.Book(context.Background(), "s1", 3)

	assert.ErrorIs(t, err, domain.ErrInvalidItinerary)
	resRepo.AssertNotCalled(t, "Insert")
}

func TestReservationService_Book_SameDayConflict(t *testing.T) {
	resRepo := &MockReservationRepository{}
	service, itineraries := newServiceForTest(resRepo, &MockUserRepository{}, &MockProducer{})

	ctx := context.Background()
	assert.NoError(t, itineraries.Replace(ctx, "s1", []domain.Itinerary{directItinerary(10, 5, 300)}))

	// Conflicts are checked against every reservation in the table, no
	// matter who booked it.
	resRepo.On("ReservedDays", ctx, mock.Anything).Return([]int{3, 10}, nil).Once()

	_, err := service.Book(ctx, "s1", 0)

	assert.ErrorIs(t, err, domain.ErrSameDayConflict)
	resRepo.AssertNotCalled(t, "NextID")
	resRepo.AssertNotCalled(t, "Insert")
}

func TestReservationService_Book_NoCapacity(t *testing.T) {
	resRepo := &MockReservationRepository{}
	service, itineraries := newServiceForTest(resRepo, &MockUserRepository{}, &MockProducer{})

	ctx := context.Background()
	assert.NoError(t, itineraries.Replace(ctx, "s1", []domain.Itinerary{directItinerary(10, 0, 300)}))

	resRepo.On("ReservedDays", ctx, mock.Anything).Return([]int{}, nil).Once()

	_, err := service.Book(ctx, "s1", 0)

	assert.ErrorIs(t, err, domain.ErrNoCapacity)
	resRepo.AssertNotCalled(t, "Insert")
}

func TestReservationService_Book_StoreFailure(t *testing.T) {
	resRepo := &MockReservationRepository{}
	producer := &MockProducer{}
	service, itineraries := newServiceForTest(resRepo, &MockUserRepository{}, producer)

	ctx := context.Background()
	assert.NoError(t, itineraries.Replace(ctx, "s1", []domain.Itinerary{directItinerary(10, 5, 300)}))

	resRepo.On("ReservedDays", ctx, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	_, err := service.Book(ctx, "s1", 0)

	assert.Error(t, err)
	producer.AssertNotCalled(t, "Publish")
}

func TestReservationService_Pay_Success(t *testing.T) {
	resRepo := &MockReservationRepository{}
	users := &MockUserRepository{}
	producer := &MockProducer{}
	service, _ := newServiceForTest(resRepo, users, producer)

	ctx := context.Background()
	res := &domain.Reservation{ID: 1, Paid: false, Day: 10, Price: 300}

	resRepo.On("GetByID", ctx, mock.Anything, int64(1)).Return(res, nil).Once()
	users.On("Balance", ctx, mock.Anything, "alice").Return(500, nil).Once()
	users.On("UpdateBalance", ctx, mock.Anything, "alice", 200).Return(nil).Once()
	resRepo.On("SetPaid", ctx, mock.Anything, int64(1)).Return(nil).Once()
	producer.On("Publish", ctx, "reservation_events", "1", mock.Anything).Return(nil).Once()

	balance, err := service.Pay(ctx, "alice", 1)

	assert.NoError(t, err)
	assert.Equal(t, 200, balance)
	resRepo.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestReservationService_Pay_AlreadyPaidLooksLikeMissing(t *testing.T) {
	resRepo := &MockReservationRepository{}
	users := &MockUserRepository{}
	service, _ := newServiceForTest(resRepo, users, &MockProducer{})

	ctx := context.Background()
	resRepo.On("GetByID", ctx, mock.Anything, int64(1)).
		Return(&domain.Reservation{ID: 1, Paid: true, Price: 300}, nil).Once()

	_, err := service.Pay(ctx, "alice", 1)

	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	users.AssertNotCalled(t, "UpdateBalance")
}

func TestReservationService_Pay_Missing(t *testing.T) {
	resRepo := &MockReservationRepository{}
	service, _ := newServiceForTest(resRepo, &MockUserRepository{}, &MockProducer{})

	ctx := context.Background()
	resRepo.On("GetByID", ctx, mock.Anything, int64(9)).
		Return(nil, domain.ErrReservationNotFound).Once()

	_, err := service.Pay(ctx, "alice", 9)

	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestReservationService_Pay_InsufficientBalance(t *testing.T) {
	resRepo := &MockReservationRepository{}
	users := &MockUserRepository{}
	service, _ := newServiceForTest(resRepo, users, &MockProducer{})

	ctx := context.Background()
	resRepo.On("GetByID", ctx, mock.Anything, int64(1)).
		Return(&domain.Reservation{ID: 1, Paid: false, Price: 300}, nil).Once()
	users.On("Balance", ctx, mock.Anything, "alice").Return(100, nil).Once()

	_, err := service.Pay(ctx, "alice", 1)

	var insufficient *domain.InsufficientBalanceError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 100, insufficient.Balance)
	assert.Equal(t, 300, insufficient.Cost)
	users.AssertNotCalled(t, "UpdateBalance")
	resRepo.AssertNotCalled(t, "SetPaid")
}

func TestReservationService_Cancel_RefundsTotalPrice(t *testing.T) {
	resRepo := &MockReservationRepository{}
	users := &MockUserRepository{}
	producer := &MockProducer{}
	service, _ := newServiceForTest(resRepo, users, producer)

	ctx := context.Background()
	resRepo.On("GetByID", ctx, mock.Anything, int64(1)).
		Return(&domain.Reservation{ID: 1, Paid: true, Day: 10, Price: 300}, nil).Once()
	resRepo.On("Delete", ctx, mock.Anything, int64(1)).Return(nil).Once()
	users.On("Balance", ctx, mock.Anything, "alice").Return(200, nil).Once()
	users.On("UpdateBalance", ctx, mock.Anything, "alice", 500).Return(nil).Once()
	producer.On("Publish", ctx, "reservation_events", "1", mock.Anything).Return(nil).Once()

	err := service.Cancel(ctx, "alice", 1)

	assert.NoError(t, err)
	resRepo.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestReservationService_Cancel_Missing(t *testing.T) {
	resRepo := &MockReservationRepository{}
	users := &MockUserRepository{}
	service, _ := newServiceForTest(resRepo, users, &MockProducer{})

	ctx := context.Background()
	resRepo.On("GetByID", ctx, mock.Anything, int64(9)).
		Return(nil, domain.ErrReservationNotFound).Once()

	err := service.Cancel(ctx, "alice", 9)

	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	resRepo.AssertNotCalled(t, "Delete")
	users.AssertNotCalled(t, "UpdateBalance")
}

func TestReservationService_RemindUnpaid(t *testing.T) {
	resRepo := &MockReservationRepository{}
	producer := &MockProducer{}
	service, _ := newServiceForTest(resRepo, &MockUserRepository{}, producer)

	ctx := context.Background()
	resRepo.On("ListUnpaid", ctx).Return([]domain.Reservation{
		{ID: 1, Day: 10, Price: 300},
		{ID: 4, Day: 12, Price: 150},
	}, nil).Once()
	producer.On("Publish", ctx, "reservation_events", "1", mock.Anything).Return(nil).Once()
	producer.On("Publish", ctx, "reservation_events", "4", mock.Anything).Return(nil).Once()

	unpaid, err := service.RemindUnpaid(ctx)

	assert.NoError(t, err)
	assert.Len(t, unpaid, 2)
	producer.AssertExpectations(t)
}
