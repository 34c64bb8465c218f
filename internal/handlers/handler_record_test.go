package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetRecordByID(ctx context.Context, recordID string) (*domain.LedgerRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerRecord), args.Error(1)
}

func (m *MockLedgerService) ListRecords(ctx context.Context, limit int, offset int) ([]domain.LedgerRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerRecord), args.Error(1)
}

func (m *MockLedgerService) AppendRecord(ctx context.Context, req dto.CreateRecordRequest, creatorUserID string) (*domain.LedgerRecord, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerRecord), args.Error(1)
}

func (m *MockLedgerService) AmendRecord(ctx context.Context, recordID string, req dto.AmendRecordRequest, updaterUserID string) (*domain.LedgerRecord, error) {
	args := m.Called(ctx, recordID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerRecord), args.Error(1)
}

func (m *MockLedgerService) RetractRecord(ctx context.Context, recordID string, updaterUserID string) error {
	args := m.Called(ctx, recordID, updaterUserID)
	return args.Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type RecordHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
	userID            string
}

func (suite *RecordHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "afm-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *RecordHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)
	v1 := suite.router.Group("/api/v1")
	registerRecordRoutes(v1, suite.mockLedgerService)
}

func (suite *RecordHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RecordHandlerTestSuite) TestAppendRecord_Created() {
	accountID := uuid.NewString()
	record := &domain.LedgerRecord{
		RecordID:      uuid.NewString(),
		Amount:        decimal.NewFromInt(500),
		Kind:          domain.Income,
		CategoryID:    uuid.NewString(),
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethod: domain.BankDeposit,
		BankAccountID: &accountID,
	}

	suite.mockLedgerService.
		On("AppendRecord", mock.Anything, mock.AnythingOfType("dto.CreateRecordRequest"), suite.userID).
		Return(record, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/records", gin.H{
		"amount":        "500",
		"categoryID":    record.CategoryID,
		"date":          "2025-03-10T00:00:00Z",
		"paymentMethod": "BANK_DEPOSIT",
		"bankAccountID": accountID,
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.RecordResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(record.RecordID, resp.RecordID)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *RecordHandlerTestSuite) TestAppendRecord_FieldErrorIs400() {
	suite.mockLedgerService.
		On("AppendRecord", mock.Anything, mock.AnythingOfType("dto.CreateRecordRequest"), suite.userID).
		Return(nil, apperrors.NewFieldError("bank_account", "cash records cannot reference a bank account")).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/records", gin.H{
		"amount":        "500",
		"categoryID":    uuid.NewString(),
		"date":          "2025-03-10T00:00:00Z",
		"paymentMethod": "CASH",
	})

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("bank_account", resp["field"])
}

func (suite *RecordHandlerTestSuite) TestAppendRecord_UnknownPaymentMethodRejectedByBinding() {
	w := suite.doRequest(http.MethodPost, "/api/v1/records", gin.H{
		"amount":        "500",
		"categoryID":    uuid.NewString(),
		"date":          "2025-03-10T00:00:00Z",
		"paymentMethod": "WIRE",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "AppendRecord", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecordHandlerTestSuite) TestRetractRecord_OwnedIs409() {
	recordID := uuid.NewString()
	suite.mockLedgerService.
		On("RetractRecord", mock.Anything, recordID, suite.userID).
		Return(apperrors.ErrIntegrity).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/records/"+recordID, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *RecordHandlerTestSuite) TestGetRecord_NotFoundIs404() {
	recordID := uuid.NewString()
	suite.mockLedgerService.
		On("GetRecordByID", mock.Anything, recordID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/records/"+recordID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RecordHandlerTestSuite) TestListRecords_NoToken401() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestRecordHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RecordHandlerTestSuite))
}
