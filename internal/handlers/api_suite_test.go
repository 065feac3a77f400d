package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/omarrayoubb/gateway-sub003/internal/handlers"
	"github.com/omarrayoubb/gateway-sub003/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-123"

// apiTestSuite wires every handler behind the real AuthMiddleware with mocked services.
type apiTestSuite struct {
	suite.Suite
	router        *gin.Engine
	jwtSecret     string
	mockAccount   *MockAccountService
	mockJournal   *MockJournalService
	mockPosting   *MockPostingService
	mockLedger    *MockLedgerService
	mockReporting *MockReportingService
	mockSubledger *MockSubledgerService
}

func (suite *apiTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidators()
}

func (suite *apiTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockAccount = new(MockAccountService)
	suite.mockJournal = new(MockJournalService)
	suite.mockPosting = new(MockPostingService)
	suite.mockLedger = new(MockLedgerService)
	suite.mockReporting = new(MockReportingService)
	suite.mockSubledger = new(MockSubledgerService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterV1Routes(v1, &portssvc.ServiceContainer{
		Account:   suite.mockAccount,
		Journal:   suite.mockJournal,
		Posting:   suite.mockPosting,
		Ledger:    suite.mockLedger,
		Reporting: suite.mockReporting,
		Subledger: suite.mockSubledger,
	})
}

// generateTestToken creates a signed HS256 JWT for testing.
func (suite *apiTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
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

// do serves an authenticated request. body may be nil, a string or any JSON-encodable value.
func (suite *apiTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *apiTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleEntry(id string, status domain.EntryStatus) *domain.JournalEntry {
	return &domain.JournalEntry{
		JournalEntryID: id,
		EntryNumber:    "JE-20240305-0001",
		EntryDate:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		EntryType:      domain.EntryManual,
		Status:         status,
		TotalDebit:     amount("100"),
		TotalCredit:    amount("100"),
		IsBalanced:     true,
		Version:        1,
		Lines: []domain.JournalEntryLine{
			{LineID: id + "-1", JournalEntryID: id, LineNumber: 1, AccountID: "acc-x", AccountCode: "1200", Debit: amount("100")},
			{LineID: id + "-2", JournalEntryID: id, LineNumber: 2, AccountID: "acc-y", AccountCode: "4000", Credit: amount("100")},
		},
	}
}
