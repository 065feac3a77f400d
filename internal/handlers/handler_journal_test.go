package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalHandlerTestSuite struct {
	apiTestSuite
}

func balancedBody() map[string]any {
	return map[string]any{
		"entryDate": "2024-03-05",
		"lines": []map[string]any{
			{"accountID": "acc-x", "debit": "100"},
			{"accountID": "acc-y", "credit": "100"},
		},
	}
}

func (suite *JournalHandlerTestSuite) TestCreate_Success() {
	suite.mockJournal.On("CreateJournalEntry", mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.EntryDate == "2024-03-05" && len(r.Lines) == 2 && r.Lines[0].Debit.Equal(amount("100"))
	}), testUserID).Return(sampleEntry("je-1", domain.StatusDraft), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", balancedBody())

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("je-1", resp.JournalEntryID)
	suite.Equal("2024-03-05", resp.EntryDate)
	suite.Len(resp.Lines, 2)
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreate_NegativeAmountRejectedByBinding() {
	body := balancedBody()
	body["lines"] = []map[string]any{
		{"accountID": "acc-x", "debit": "-5"},
		{"accountID": "acc-y", "credit": "100"},
	}

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournal.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestCreate_BadDate() {
	body := balancedBody()
	body["entryDate"] = "05/03/2024"

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestCreate_UnbalancedReturnsTotals() {
	mismatch := &apperrors.BalanceMismatchError{
		TotalDebit:  amount("100"),
		TotalCredit: amount("90"),
		Difference:  amount("10"),
	}
	suite.mockJournal.On("CreateJournalEntry", mock.Anything, mock.Anything, testUserID).Return(nil, mismatch).Once()

	body := balancedBody()
	body["status"] = "posted"
	w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp map[string]any
	suite.decode(w, &resp)
	suite.Equal("100", resp["totalDebit"])
	suite.Equal("90", resp["totalCredit"])
	suite.Equal("10", resp["difference"])
}

func (suite *JournalHandlerTestSuite) TestCreate_UnknownAccount() {
	suite.mockJournal.On("CreateJournalEntry", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.NewNotFoundError("account", "acc-x")).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", balancedBody())

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestList_PassesFilters() {
	suite.mockJournal.On("ListJournalEntries", mock.Anything, mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
		return p.Status == "posted" && p.From == "2024-01-01" && p.Limit == 5
	})).Return(&dto.ListJournalEntriesResponse{JournalEntries: []dto.JournalEntryResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?status=posted&from=2024-01-01&limit=5", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestList_InvalidStatus() {
	w := suite.do(http.MethodGet, "/api/v1/journal-entries?status=pending", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestUpdate_PostedEntryIsRefused() {
	suite.mockJournal.On("UpdateJournalEntry", mock.Anything, "je-1", mock.Anything, testUserID).
		Return(nil, apperrors.NewInvalidStateError("update", "posted", "")).Once()

	w := suite.do(http.MethodPut, "/api/v1/journal-entries/je-1", map[string]any{"notes": "late"})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp map[string]any
	suite.decode(w, &resp)
	suite.Equal("posted", resp["status"])
}

func (suite *JournalHandlerTestSuite) TestUpdate_VersionConflict() {
	suite.mockJournal.On("UpdateJournalEntry", mock.Anything, "je-1", mock.Anything, testUserID).
		Return(nil, fmt.Errorf("%w: journal entry je-1", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPut, "/api/v1/journal-entries/je-1", map[string]any{"notes": "x"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestDelete() {
	suite.mockJournal.On("DeleteJournalEntry", mock.Anything, "je-1", testUserID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/journal-entries/je-1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPost_ReportsLedgerSync() {
	entry := sampleEntry("je-1", domain.StatusPosted)
	suite.mockPosting.On("PostJournalEntry", mock.Anything, "je-1", testUserID).
		Return(&domain.PostingResult{Entry: entry, LedgerSynced: false}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-1/post", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PostingResponse
	suite.decode(w, &resp)
	suite.False(resp.LedgerSynced)
	suite.Equal(domain.StatusPosted, resp.JournalEntry.Status)
}

func (suite *JournalHandlerTestSuite) TestPost_LockedElsewhere() {
	suite.mockPosting.On("PostJournalEntry", mock.Anything, "je-1", testUserID).
		Return(nil, fmt.Errorf("%w: posting:je-1 is locked by another request", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-1/post", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestVoid_WithReason() {
	entry := sampleEntry("je-1", domain.StatusVoid)
	suite.mockPosting.On("VoidJournalEntry", mock.Anything, "je-1", "duplicate", testUserID).
		Return(&domain.PostingResult{Entry: entry, LedgerSynced: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-1/void", map[string]any{"reason": "duplicate"})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestVoid_WithoutBody() {
	suite.mockPosting.On("VoidJournalEntry", mock.Anything, "je-1", "", testUserID).
		Return(nil, apperrors.NewInvalidStateError("void", "draft", "only posted entries can be voided")).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-1/void", nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *JournalHandlerTestSuite) TestUnexpectedErrorIsHidden() {
	suite.mockJournal.On("GetJournalEntry", mock.Anything, "je-1").Return(nil, fmt.Errorf("connection refused")).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries/je-1", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection refused")
}

func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
