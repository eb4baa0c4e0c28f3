package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamerental-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRentalService struct {
	mock.Mock
}

func (m *mockRentalService) ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *mockRentalService) CreateRental(ctx context.Context, customerID, gameID, daysRented int32) (*domain.Rental, error) {
	args := m.Called(ctx, customerID, gameID, daysRented)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *mockRentalService) ReturnRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *mockRentalService) DeleteRental(ctx context.Context, rentalID int32) error {
	args := m.Called(ctx, rentalID)
	return args.Error(0)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func newTestRouter(svc RentalService) http.Handler {
	return NewRouter(svc, stubPinger{}, RouterConfig{})
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListRentals(t *testing.T) {
	ret := "2024-02-05"
	fee := int32(0)
	rentals := []domain.Rental{{
		ID: 1, CustomerID: 1, GameID: 1, RentDate: "2024-02-02", DaysRented: 3,
		ReturnDate: &ret, OriginalPrice: 4500, DelayFee: &fee,
		Customer: &domain.RentalCustomer{ID: 1, Name: "João Alfredo"},
		Game:     &domain.RentalGame{ID: 1, Name: "Banco Imobiliário", CategoryID: 1, CategoryName: "Estratégia"},
	}}

	tests := []struct {
		name           string
		target         string
		filter         *domain.RentalFilter
		serviceErr     error
		expectedStatus int
	}{
		{name: "all", target: "/rentals", filter: &domain.RentalFilter{}, expectedStatus: http.StatusOK},
		{name: "by customer", target: "/rentals?customerId=1", filter: &domain.RentalFilter{CustomerID: 1}, expectedStatus: http.StatusOK},
		{name: "by game", target: "/rentals?gameId=7", filter: &domain.RentalFilter{GameID: 7}, expectedStatus: http.StatusOK},
		{name: "customer wins over game", target: "/rentals?customerId=2&gameId=7", filter: &domain.RentalFilter{CustomerID: 2}, expectedStatus: http.StatusOK},
		{name: "non-numeric filter", target: "/rentals?gameId=abc", expectedStatus: http.StatusUnprocessableEntity},
		{name: "store failure", target: "/rentals", filter: &domain.RentalFilter{}, serviceErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockRentalService)
			if tt.filter != nil {
				if tt.serviceErr != nil {
					svc.On("ListRentals", mock.Anything, *tt.filter).Return(nil, tt.serviceErr)
				} else {
					svc.On("ListRentals", mock.Anything, *tt.filter).Return(rentals, nil)
				}
			}

			rec := serve(newTestRouter(svc), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
			if tt.expectedStatus != http.StatusOK {
				assert.Empty(t, rec.Body.String())
				return
			}

			var got []map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Len(t, got, 1)
			assert.Equal(t, "2024-02-02", got[0]["rentDate"])
			assert.Equal(t, float64(4500), got[0]["originalPrice"])
			game := got[0]["game"].(map[string]any)
			assert.Equal(t, "Estratégia", game["categoryName"])
		})
	}
}

func TestListRentals_EmptyIsArray(t *testing.T) {
	svc := new(mockRentalService)
	svc.On("ListRentals", mock.Anything, domain.RentalFilter{}).Return([]domain.Rental{}, nil)

	rec := serve(newTestRouter(svc), http.MethodGet, "/rentals", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateRental(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		callService    bool
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", body: `{"customerId":1,"gameId":1,"daysRented":3}`, callService: true, expectedStatus: http.StatusCreated},
		{name: "numeric strings", body: `{"customerId":"1","gameId":"1","daysRented":"3"}`, callService: true, expectedStatus: http.StatusCreated},
		{name: "zero days", body: `{"customerId":1,"gameId":1,"daysRented":0}`, expectedStatus: http.StatusBadRequest},
		{name: "negative days", body: `{"customerId":1,"gameId":1,"daysRented":-4}`, expectedStatus: http.StatusBadRequest},
		{name: "zero days wins over missing fields", body: `{"daysRented":0}`, expectedStatus: http.StatusBadRequest},
		{name: "zero days as string", body: `{"daysRented":"0","gameId":"x"}`, expectedStatus: http.StatusBadRequest},
		{name: "null days", body: `{"customerId":1,"gameId":1,"daysRented":null}`, expectedStatus: http.StatusBadRequest},
		{name: "empty string days", body: `{"customerId":1,"gameId":1,"daysRented":""}`, expectedStatus: http.StatusBadRequest},
		{name: "blank string days", body: `{"customerId":1,"gameId":1,"daysRented":"  "}`, expectedStatus: http.StatusBadRequest},
		{name: "false days", body: `{"customerId":1,"gameId":1,"daysRented":false}`, expectedStatus: http.StatusBadRequest},
		{name: "true days is not a number", body: `{"customerId":1,"gameId":1,"daysRented":true}`, expectedStatus: http.StatusUnprocessableEntity},
		{name: "fractional days below one", body: `{"customerId":1,"gameId":1,"daysRented":0.5}`, expectedStatus: http.StatusBadRequest},
		{name: "missing field", body: `{"customerId":1,"daysRented":3}`, expectedStatus: http.StatusUnprocessableEntity},
		{name: "non-numeric", body: `{"customerId":"abc","gameId":1,"daysRented":3}`, expectedStatus: http.StatusUnprocessableEntity},
		{name: "fractional", body: `{"customerId":1,"gameId":1,"daysRented":2.5}`, expectedStatus: http.StatusUnprocessableEntity},
		{name: "unknown key", body: `{"customerId":1,"gameId":1,"daysRented":3,"extra":true}`, expectedStatus: http.StatusUnprocessableEntity},
		{name: "invalid json", body: `{"customerId":`, expectedStatus: http.StatusUnprocessableEntity},
		{name: "not an object", body: `[1,2,3]`, expectedStatus: http.StatusUnprocessableEntity},
		{name: "customer not found", body: `{"customerId":9,"gameId":1,"daysRented":3}`, callService: true, serviceErr: domain.ErrCustomerNotFound, expectedStatus: http.StatusBadRequest},
		{name: "game not found", body: `{"customerId":1,"gameId":9,"daysRented":3}`, callService: true, serviceErr: domain.ErrGameNotFound, expectedStatus: http.StatusBadRequest},
		{name: "out of stock", body: `{"customerId":1,"gameId":1,"daysRented":3}`, callService: true, serviceErr: domain.ErrGameOutOfStock, expectedStatus: http.StatusBadRequest},
		{name: "internal error", body: `{"customerId":1,"gameId":1,"daysRented":3}`, callService: true, serviceErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
		{name: "price out of range", body: `{"customerId":1,"gameId":1,"daysRented":3}`, callService: true, serviceErr: fmt.Errorf("price: %w", domain.ErrAmountOutOfRange), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockRentalService)
			if tt.callService {
				if tt.serviceErr != nil {
					svc.On("CreateRental", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
				} else {
					svc.On("CreateRental", mock.Anything, int32(1), int32(1), int32(3)).Return(&domain.Rental{ID: 1}, nil)
				}
			}

			rec := serve(newTestRouter(svc), http.MethodPost, "/rentals", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Empty(t, rec.Body.String())
			svc.AssertExpectations(t)
			if !tt.callService {
				svc.AssertNotCalled(t, "CreateRental", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestReturnRental(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		callService    bool
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", target: "/rentals/4/return", callService: true, expectedStatus: http.StatusOK},
		{name: "non-numeric id", target: "/rentals/abc/return", expectedStatus: http.StatusUnprocessableEntity},
		{name: "zero id", target: "/rentals/0/return", expectedStatus: http.StatusUnprocessableEntity},
		{name: "not found", target: "/rentals/4/return", callService: true, serviceErr: domain.ErrRentalNotFound, expectedStatus: http.StatusNotFound},
		{name: "already returned", target: "/rentals/4/return", callService: true, serviceErr: domain.ErrRentalAlreadyReturned, expectedStatus: http.StatusBadRequest},
		{name: "internal error", target: "/rentals/4/return", callService: true, serviceErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockRentalService)
			if tt.callService {
				if tt.serviceErr != nil {
					svc.On("ReturnRental", mock.Anything, int32(4)).Return(nil, tt.serviceErr)
				} else {
					svc.On("ReturnRental", mock.Anything, int32(4)).Return(&domain.Rental{ID: 4}, nil)
				}
			}

			rec := serve(newTestRouter(svc), http.MethodPost, tt.target, "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Empty(t, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestDeleteRental(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		callService    bool
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", target: "/rentals/4", callService: true, expectedStatus: http.StatusOK},
		{name: "negative id", target: "/rentals/-1", expectedStatus: http.StatusUnprocessableEntity},
		{name: "not found", target: "/rentals/4", callService: true, serviceErr: domain.ErrRentalNotFound, expectedStatus: http.StatusNotFound},
		{name: "still open", target: "/rentals/4", callService: true, serviceErr: domain.ErrRentalNotReturned, expectedStatus: http.StatusBadRequest},
		{name: "internal error", target: "/rentals/4", callService: true, serviceErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockRentalService)
			if tt.callService {
				svc.On("DeleteRental", mock.Anything, int32(4)).Return(tt.serviceErr)
			}

			rec := serve(newTestRouter(svc), http.MethodDelete, tt.target, "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rec := serve(newTestRouter(new(mockRentalService)), http.MethodPut, "/rentals/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
