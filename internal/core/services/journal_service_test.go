package services_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/core/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockProjector   *MockLedgerProjector
	service         portssvc.JournalSvcFacade
	ctx             context.Context

	cash    domain.Account
	revenue domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockProjector = new(MockLedgerProjector)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		services.NewAccountService(suite.mockAccountRepo),
		suite.mockProjector,
		passThroughTx{},
	)
	suite.ctx = context.Background()

	suite.cash = domain.Account{AccountID: "acc-cash", Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}
	suite.revenue = domain.Account{AccountID: "acc-rev", Code: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true}
}

func (suite *JournalServiceTestSuite) accounts() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cash.AccountID:    suite.cash,
		suite.revenue.AccountID: suite.revenue,
	}
}

func (suite *JournalServiceTestSuite) request(debit, credit string) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryNumber: "JE-1",
		EntryDate:   "2024-03-05",
		Notes:       "cash sale",
		Lines: []dto.JournalEntryLineRequest{
			{AccountID: suite.cash.AccountID, Debit: amount(debit)},
			{AccountID: suite.revenue.AccountID, Credit: amount(credit)},
		},
	}
}

func (suite *JournalServiceTestSuite) expectAccounts() {
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{suite.cash.AccountID, suite.revenue.AccountID}).
		Return(suite.accounts(), nil).Once()
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	suite.expectAccounts()
	suite.mockJournalRepo.On("EntryNumberExists", suite.ctx, (*string)(nil), "JE-1").Return(false, nil).Once()
	suite.mockJournalRepo.On("CreateJournalEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusDraft && len(e.Lines) == 2 && e.Version == 1
	})).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(suite.ctx, suite.request("100", "100"), "user-1")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), domain.StatusDraft, entry.Status)
	assert.Equal(suite.T(), domain.EntryManual, entry.EntryType)
	assert.True(suite.T(), entry.IsBalanced)
	assert.True(suite.T(), entry.TotalDebit.Equal(amount("100")))
	assert.Equal(suite.T(), 1, entry.Lines[0].LineNumber)
	assert.Equal(suite.T(), 2, entry.Lines[1].LineNumber)
	assert.Equal(suite.T(), "1000", entry.Lines[0].AccountCode)
	assert.Equal(suite.T(), "Sales", entry.Lines[1].AccountName)
	assert.Equal(suite.T(), entry.JournalEntryID, entry.Lines[0].JournalEntryID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockProjector.AssertNotCalled(suite.T(), "SyncTransaction", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_DuplicateNumber() {
	suite.expectAccounts()
	suite.mockJournalRepo.On("EntryNumberExists", suite.ctx, (*string)(nil), "JE-1").Return(true, nil).Once()

	entry, err := suite.service.CreateJournalEntry(suite.ctx, suite.request("100", "100"), "user-1")

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_GeneratesNumber() {
	suite.expectAccounts()
	suite.mockJournalRepo.On("EntryNumberExists", suite.ctx, (*string)(nil), mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockJournalRepo.On("CreateJournalEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	req := suite.request("100", "100")
	req.EntryNumber = ""
	entry, err := suite.service.CreateJournalEntry(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	assert.Regexp(suite.T(), regexp.MustCompile(`^JE-20240305-[0-9A-F]{8}$`), entry.EntryNumber)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_GeneratedNumbersExhausted() {
	suite.expectAccounts()
	suite.mockJournalRepo.On("EntryNumberExists", suite.ctx, (*string)(nil), mock.AnythingOfType("string")).Return(true, nil).Times(5)

	req := suite.request("100", "100")
	req.EntryNumber = ""
	entry, err := suite.service.CreateJournalEntry(suite.ctx, req, "user-1")

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInternal)
	assert.NotErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.mockJournalRepo.AssertNumberOfCalls(suite.T(), "EntryNumberExists", 5)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_LineWithBothSides() {
	req := suite.request("100", "100")
	req.Lines[0].Credit = amount("5")

	_, err := suite.service.CreateJournalEntry(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_NegativeAmount() {
	req := suite.request("-1", "100")

	_, err := suite.service.CreateJournalEntry(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnknownAccount() {
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, mock.Anything).
		Return(nil, apperrors.NewNotFoundError("account", suite.revenue.AccountID)).Once()

	_, err := suite.service.CreateJournalEntry(suite.ctx, suite.request("100", "100"), "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_InactiveAccount() {
	accounts := suite.accounts()
	inactive := accounts[suite.revenue.AccountID]
	inactive.IsActive = false
	accounts[suite.revenue.AccountID] = inactive
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateJournalEntry(suite.ctx, suite.request("100", "100"), "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_AccountOfOtherOrganization() {
	accounts := suite.accounts()
	scoped := accounts[suite.cash.AccountID]
	scoped.OrganizationID = ptr("org-b")
	accounts[suite.cash.AccountID] = scoped
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, mock.Anything).Return(accounts, nil).Once()

	req := suite.request("100", "100")
	req.OrganizationID = ptr("org-a")
	_, err := suite.service.CreateJournalEntry(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_PostedWhileUnbalanced() {
	suite.expectAccounts()
	req := suite.request("100", "90")
	req.Status = domain.StatusPosted

	_, err := suite.service.CreateJournalEntry(suite.ctx, req, "user-1")

	var mismatch *apperrors.BalanceMismatchError
	suite.Require().True(errors.As(err, &mismatch))
	assert.True(suite.T(), mismatch.Difference.Equal(amount("10")))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_PostedProjectsBestEffort() {
	suite.expectAccounts()
	suite.mockJournalRepo.On("EntryNumberExists", suite.ctx, (*string)(nil), "JE-1").Return(false, nil).Once()
	suite.mockJournalRepo.On("CreateJournalEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusPosted && e.PostedAt != nil
	})).Return(nil).Once()
	suite.mockProjector.On("SyncTransaction", suite.ctx, mock.MatchedBy(func(src domain.LedgerSource) bool {
		return src.TransactionType == domain.TxnJournalEntry && len(src.Lines) == 2
	})).Return(errors.New("ledger table locked")).Once()

	req := suite.request("100", "100")
	req.Status = domain.StatusPosted
	entry, err := suite.service.CreateJournalEntry(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), domain.StatusPosted, entry.Status)
	suite.mockProjector.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_InvalidDate() {
	req := suite.request("100", "100")
	req.EntryDate = "05/03/2024"

	_, err := suite.service.CreateJournalEntry(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_PostedRejected() {
	posted := &domain.JournalEntry{JournalEntryID: "je-1", Status: domain.StatusPosted, Version: 2}
	suite.mockJournalRepo.On("FindJournalEntryByID", suite.ctx, "je-1").Return(posted, nil).Once()

	_, err := suite.service.UpdateJournalEntry(suite.ctx, "je-1", dto.UpdateJournalEntryRequest{Notes: ptr("x")}, "user-1")

	var stateErr *apperrors.InvalidStateError
	suite.Require().True(errors.As(err, &stateErr))
	assert.Equal(suite.T(), "posted", stateErr.Status)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_ReplacesLines() {
	draft := &domain.JournalEntry{
		JournalEntryID: "je-1",
		Status:         domain.StatusDraft,
		Version:        3,
		EntryDate:      day(5),
		Lines: []domain.JournalEntryLine{
			{LineID: "old", LineNumber: 1, AccountID: suite.cash.AccountID, Debit: amount("1")},
		},
	}
	suite.mockJournalRepo.On("FindJournalEntryByID", suite.ctx, "je-1").Return(draft, nil).Once()
	suite.expectAccounts()
	suite.mockJournalRepo.On("UpdateJournalEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return len(e.Lines) == 2 && e.TotalDebit.Equal(amount("40")) && e.TotalCredit.Equal(amount("40")) && e.IsBalanced
	}), true, 3).Return(nil).Once()

	updated, err := suite.service.UpdateJournalEntry(suite.ctx, "je-1", dto.UpdateJournalEntryRequest{
		Lines: []dto.JournalEntryLineRequest{
			{AccountID: suite.cash.AccountID, Debit: amount("40")},
			{AccountID: suite.revenue.AccountID, Credit: amount("40")},
		},
	}, "user-2")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 4, updated.Version)
	assert.Equal(suite.T(), "user-2", updated.LastUpdatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_HeaderOnlyKeepsLines() {
	draft := &domain.JournalEntry{JournalEntryID: "je-1", Status: domain.StatusDraft, Version: 1}
	suite.mockJournalRepo.On("FindJournalEntryByID", suite.ctx, "je-1").Return(draft, nil).Once()
	suite.mockJournalRepo.On("UpdateJournalEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Reference == "INV-9" && e.EntryDate.Equal(day(9))
	}), false, 1).Return(nil).Once()

	_, err := suite.service.UpdateJournalEntry(suite.ctx, "je-1", dto.UpdateJournalEntryRequest{
		Reference: ptr("INV-9"),
		EntryDate: ptr("2024-03-09"),
	}, "user-1")

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_VersionConflict() {
	draft := &domain.JournalEntry{JournalEntryID: "je-1", Status: domain.StatusDraft, Version: 1}
	suite.mockJournalRepo.On("FindJournalEntryByID", suite.ctx, "je-1").Return(draft, nil).Once()
	suite.mockJournalRepo.On("UpdateJournalEntry", suite.ctx, mock.Anything, false, 1).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.UpdateJournalEntry(suite.ctx, "je-1", dto.UpdateJournalEntryRequest{Notes: ptr("n")}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntry_Draft() {
	draft := &domain.JournalEntry{JournalEntryID: "je-1", Status: domain.StatusDraft, Version: 3}
	suite.mockJournalRepo.On("FindJournalEntryByID", suite.ctx, "je-1").Return(draft, nil).Once()
	suite.mockJournalRepo.On("DeleteJournalEntry", suite.ctx, "je-1", 3).Return(nil).Once()
	suite.mockProjector.On("RemoveTransaction", suite.ctx, "je-1", domain.TxnJournalEntry).Return(nil).Once()

	err := suite.service.DeleteJournalEntry(suite.ctx, "je-1", "user-1")

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockProjector.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntry_PostedRejected() {
	posted := &domain.JournalEntry{JournalEntryID: "je-1", Status: domain.StatusPosted}
	suite.mockJournalRepo.On("FindJournalEntryByID", suite.ctx, "je-1").Return(posted, nil).Once()

	err := suite.service.DeleteJournalEntry(suite.ctx, "je-1", "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteJournalEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockProjector.AssertNotCalled(suite.T(), "RemoveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntry_PostedConcurrently() {
	// Read as a draft, but posted by another request before the delete lands.
	draft := &domain.JournalEntry{JournalEntryID: "je-1", Status: domain.StatusDraft, Version: 1}
	suite.mockJournalRepo.On("FindJournalEntryByID", suite.ctx, "je-1").Return(draft, nil).Once()
	suite.mockJournalRepo.On("DeleteJournalEntry", suite.ctx, "je-1", 1).
		Return(fmt.Errorf("%w: journal entry je-1 is at version 2, expected 1", apperrors.ErrConflict)).Once()

	err := suite.service.DeleteJournalEntry(suite.ctx, "je-1", "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockProjector.AssertNotCalled(suite.T(), "RemoveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_Defaults() {
	entries := []domain.JournalEntry{{JournalEntryID: "je-2", EntryDate: day(2)}, {JournalEntryID: "je-1", EntryDate: day(1)}}
	suite.mockJournalRepo.On("ListJournalEntries", suite.ctx, portsrepo.JournalEntryListFilter{}, 20, (*string)(nil)).
		Return(entries, "next-page", nil).Once()

	resp, err := suite.service.ListJournalEntries(suite.ctx, dto.ListJournalEntriesParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.JournalEntries, 2)
	assert.Equal(suite.T(), "2024-03-02", resp.JournalEntries[0].EntryDate)
	suite.Require().NotNil(resp.NextToken)
	assert.Equal(suite.T(), "next-page", *resp.NextToken)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_FilterAndClamp() {
	status := domain.StatusPosted
	suite.mockJournalRepo.On("ListJournalEntries", suite.ctx, mock.MatchedBy(func(f portsrepo.JournalEntryListFilter) bool {
		return f.Status != nil && *f.Status == status && f.From != nil && f.From.Equal(day(1))
	}), 100, (*string)(nil)).Return([]domain.JournalEntry{}, nil, nil).Once()

	resp, err := suite.service.ListJournalEntries(suite.ctx, dto.ListJournalEntriesParams{
		Status: "posted",
		From:   "2024-03-01",
		Limit:  500,
	})

	suite.Require().NoError(err)
	assert.Empty(suite.T(), resp.JournalEntries)
	assert.Nil(suite.T(), resp.NextToken)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_InvertedRange() {
	_, err := suite.service.ListJournalEntries(suite.ctx, dto.ListJournalEntriesParams{From: "2024-03-09", To: "2024-03-01"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

// --- Run Test Suite ---
func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
