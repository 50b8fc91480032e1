package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/core/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type DistributionServiceTestSuite struct {
	suite.Suite
	mockDistributionRepo *MockDistributionRepository
	mockBeneficiaryRepo  *MockBeneficiaryRepository
	mockFiscalYearRepo   *MockFiscalYearRepository
	mockLedger           *MockJournalRepository
	events               *recordingPublisher
	split                domain.SplitConfig
	policy               domain.ApprovalPolicy
	service              portssvc.DistributionSvcFacade
	fy                   domain.FiscalYear
	period               domain.DistributionPeriod
	snapshot             domain.LedgerSnapshot
	beneficiaries        []domain.Beneficiary
	userID               string
}

func (suite *DistributionServiceTestSuite) SetupTest() {
	suite.mockDistributionRepo = new(MockDistributionRepository)
	suite.mockBeneficiaryRepo = new(MockBeneficiaryRepository)
	suite.mockFiscalYearRepo = new(MockFiscalYearRepository)
	suite.mockLedger = new(MockJournalRepository)
	suite.events = &recordingPublisher{}
	suite.split = domain.SplitConfig{NazerPercent: pct("10"), CharityPercent: pct("20"), CorpusPercent: pct("10")}
	suite.policy = domain.ApprovalPolicy{
		Roles: []domain.ApproverRole{domain.RoleAccountant, domain.RoleNazer},
		Mode:  domain.ApprovalSequential,
	}
	suite.service = suite.newService(suite.split)

	suite.userID = uuid.NewString()
	suite.fy = domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Name:         "FY2025",
		StartDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:       domain.FiscalYearOpen,
	}
	suite.period = domain.DistributionPeriod{
		FiscalYearID: suite.fy.FiscalYearID,
		PeriodStart:  suite.fy.StartDate,
		PeriodEnd:    suite.fy.EndDate,
	}
	suite.snapshot = domain.LedgerSnapshot{
		TotalRevenues: decimal.NewFromInt(100000),
		TotalExpenses: decimal.NewFromInt(40000),
		PostedEntries: 18,
	}
	suite.beneficiaries = []domain.Beneficiary{
		{BeneficiaryID: "b-1", Name: "Family A", BeneficiaryType: domain.BeneficiaryFamily, SharePercentage: pct("50"), Archival: domain.Active()},
		{BeneficiaryID: "b-2", Name: "Orphanage", BeneficiaryType: domain.BeneficiaryCharity, SharePercentage: pct("30"), Archival: domain.Active()},
		{BeneficiaryID: "b-3", Name: "School", BeneficiaryType: domain.BeneficiaryInstitution, SharePercentage: pct("20"), Archival: domain.Active()},
	}
}

func (suite *DistributionServiceTestSuite) newService(split domain.SplitConfig) portssvc.DistributionSvcFacade {
	return services.NewDistributionService(
		suite.mockDistributionRepo,
		suite.mockBeneficiaryRepo,
		suite.mockFiscalYearRepo,
		suite.mockLedger,
		split,
		suite.policy,
		services.WithEventPublisher(suite.events),
	)
}

func (suite *DistributionServiceTestSuite) window() domain.DateWindow {
	return domain.DateWindow{Start: suite.period.PeriodStart, End: suite.period.PeriodEnd}
}

func (suite *DistributionServiceTestSuite) expectYearAndLedger(ctx context.Context, snap domain.LedgerSnapshot) {
	fy := suite.fy
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", ctx, fy.FiscalYearID).Return(&fy, nil)
	suite.mockLedger.On("LedgerSnapshot", ctx, fy.FiscalYearID, suite.window()).Return(snap, nil)
}

func (suite *DistributionServiceTestSuite) existing(status domain.DistributionStatus) *domain.Distribution {
	id := uuid.NewString()
	return &domain.Distribution{
		DistributionID: id,
		Period:         suite.period,
		Revision:       1,
		Split:          suite.split,
		Snapshot:       suite.snapshot,
		Status:         status,
		Version:        3,
		Approvals:      suite.policy.NewApprovals(id, 1, time.Now(), uuid.NewString),
	}
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_NewPeriod() {
	ctx := context.Background()
	suite.expectYearAndLedger(ctx, suite.snapshot)
	suite.mockDistributionRepo.On("FindDistributionByPeriod", ctx, suite.period).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBeneficiaryRepo.On("ListBeneficiaries", ctx, false).Return(suite.beneficiaries, nil).Once()
	suite.mockDistributionRepo.On("CreateDistribution", ctx, mock.MatchedBy(func(d domain.Distribution) bool {
		return d.Revision == 1 && d.CheckConservation() == nil && len(d.Approvals) == 2
	})).Return(nil).Once()

	d, err := suite.service.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: suite.fy.FiscalYearID}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DistributionPending, d.Status)
	suite.True(d.NetRevenues.Equal(decimal.NewFromInt(60000)))
	suite.True(d.NazerShare.Equal(decimal.NewFromInt(6000)))
	suite.True(d.WaqifCharity.Equal(decimal.NewFromInt(12000)))
	suite.True(d.WaqfCorpus.Equal(decimal.NewFromInt(6000)))
	suite.True(d.DistributableAmount.Equal(decimal.NewFromInt(36000)))
	suite.Equal(3, d.BeneficiariesCount)
	suite.Require().Len(d.Details, 3)
	suite.True(d.Details[0].AllocatedAmount.Equal(decimal.NewFromInt(18000)))
	suite.True(d.Details[1].AllocatedAmount.Equal(decimal.NewFromInt(10800)))
	suite.True(d.Details[2].AllocatedAmount.Equal(decimal.NewFromInt(7200)))
	suite.Equal(domain.RoleAccountant, d.Approvals[0].Role)
	suite.Equal(1, d.Approvals[0].Level)
	suite.Equal(suite.split, d.Split)
	suite.Equal([]domain.EventTopic{domain.TopicDistributionComputed}, suite.events.topics())
	suite.mockDistributionRepo.AssertExpectations(suite.T())
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_ResidualGoesToLargestShare() {
	ctx := context.Background()
	svc := suite.newService(domain.SplitConfig{NazerPercent: decimal.Zero, CharityPercent: decimal.Zero, CorpusPercent: decimal.Zero})
	equal := []domain.Beneficiary{
		{BeneficiaryID: "b-3", SharePercentage: pct("1"), Archival: domain.Active()},
		{BeneficiaryID: "b-1", SharePercentage: pct("1"), Archival: domain.Active()},
		{BeneficiaryID: "b-2", SharePercentage: pct("1"), Archival: domain.Active()},
	}
	suite.expectYearAndLedger(ctx, domain.LedgerSnapshot{TotalRevenues: decimal.NewFromInt(100), TotalExpenses: decimal.Zero})
	suite.mockDistributionRepo.On("FindDistributionByPeriod", ctx, suite.period).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBeneficiaryRepo.On("ListBeneficiaries", ctx, false).Return(equal, nil).Once()
	suite.mockDistributionRepo.On("CreateDistribution", ctx, mock.Anything).Return(nil).Once()

	d, err := svc.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: suite.fy.FiscalYearID}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(d.Details, 3)
	suite.Equal("b-1", d.Details[0].BeneficiaryID)
	suite.Equal("33.34", d.Details[0].AllocatedAmount.StringFixed(2))
	suite.Equal("0.01", d.Details[0].ResidualApplied.StringFixed(2))
	suite.Equal("33.33", d.Details[1].AllocatedAmount.StringFixed(2))
	suite.Equal("33.33", d.Details[2].AllocatedAmount.StringFixed(2))
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_UnchangedIsIdempotent() {
	ctx := context.Background()
	current := suite.existing(domain.DistributionPending)
	suite.expectYearAndLedger(ctx, suite.snapshot)
	suite.mockDistributionRepo.On("FindDistributionByPeriod", ctx, suite.period).Return(current, nil).Once()

	d, err := suite.service.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: suite.fy.FiscalYearID}, suite.userID)

	suite.Require().NoError(err)
	suite.Same(current, d)
	suite.mockDistributionRepo.AssertNotCalled(suite.T(), "CreateDistribution", mock.Anything, mock.Anything)
	suite.mockDistributionRepo.AssertNotCalled(suite.T(), "SaveRevision", mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.events.topics())
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_ChangedLedgerRevises() {
	ctx := context.Background()
	current := suite.existing(domain.DistributionPending)
	changed := suite.snapshot
	changed.TotalRevenues = decimal.NewFromInt(110000)
	changed.PostedEntries++
	suite.expectYearAndLedger(ctx, changed)
	suite.mockDistributionRepo.On("FindDistributionByPeriod", ctx, suite.period).Return(current, nil).Once()
	suite.mockBeneficiaryRepo.On("ListBeneficiaries", ctx, false).Return(suite.beneficiaries, nil).Once()
	suite.mockDistributionRepo.On("SaveRevision", ctx, mock.MatchedBy(func(d domain.Distribution) bool {
		return d.Revision == 2 && d.DistributionID == current.DistributionID && d.Approvals[0].Revision == 2
	}), int64(3)).Return(nil).Once()

	d, err := suite.service.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: suite.fy.FiscalYearID}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, d.Revision)
	suite.True(d.NetRevenues.Equal(decimal.NewFromInt(70000)))
	// Revision one approvals stay in the audit trail.
	suite.Len(d.Approvals, 4)
	suite.Len(d.CurrentApprovals(), 2)
	suite.mockDistributionRepo.AssertExpectations(suite.T())
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_ApprovedIsFinal() {
	ctx := context.Background()
	fy := suite.fy
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", ctx, fy.FiscalYearID).Return(&fy, nil).Once()
	suite.mockDistributionRepo.On("FindDistributionByPeriod", ctx, suite.period).Return(suite.existing(domain.DistributionApproved), nil).Once()

	_, err := suite.service.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: fy.FiscalYearID}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockLedger.AssertNotCalled(suite.T(), "LedgerSnapshot", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_PartiallyApprovedIsLocked() {
	ctx := context.Background()
	current := suite.existing(domain.DistributionPending)
	current.Approvals[0].Status = domain.ApprovalApproved
	fy := suite.fy
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", ctx, fy.FiscalYearID).Return(&fy, nil).Once()
	suite.mockDistributionRepo.On("FindDistributionByPeriod", ctx, suite.period).Return(current, nil).Once()

	_, err := suite.service.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: fy.FiscalYearID}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrState)
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_NegativeNet() {
	ctx := context.Background()
	suite.expectYearAndLedger(ctx, domain.LedgerSnapshot{TotalRevenues: decimal.NewFromInt(80), TotalExpenses: decimal.NewFromInt(100)})
	suite.mockDistributionRepo.On("FindDistributionByPeriod", ctx, suite.period).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: suite.fy.FiscalYearID}, suite.userID)

	suite.Require().Error(err)
	appErr, ok := apperrors.AsAppError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeNegativeDistributableAmount, appErr.Code)
	suite.True(appErr.Delta.Equal(decimal.NewFromInt(-20)))
	suite.mockDistributionRepo.AssertNotCalled(suite.T(), "CreateDistribution", mock.Anything, mock.Anything)
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_NoEligibleBeneficiaries() {
	ctx := context.Background()
	suite.expectYearAndLedger(ctx, suite.snapshot)
	suite.mockDistributionRepo.On("FindDistributionByPeriod", ctx, suite.period).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBeneficiaryRepo.On("ListBeneficiaries", ctx, false).Return([]domain.Beneficiary{
		{BeneficiaryID: "b-9", SharePercentage: decimal.Zero, Archival: domain.Active()},
	}, nil).Once()

	_, err := suite.service.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: suite.fy.FiscalYearID}, suite.userID)

	suite.True(apperrors.HasCode(err, apperrors.CodeNoEligibleBeneficiaries))
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_ClosedYearIsLocked() {
	ctx := context.Background()
	fy := suite.fy
	fy.Status = domain.FiscalYearClosed
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", ctx, fy.FiscalYearID).Return(&fy, nil).Once()

	_, err := suite.service.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: fy.FiscalYearID}, suite.userID)

	suite.True(apperrors.HasCode(err, apperrors.CodePeriodLocked))
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_PeriodOutsideYear() {
	ctx := context.Background()
	fy := suite.fy
	start := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", ctx, fy.FiscalYearID).Return(&fy, nil).Once()

	_, err := suite.service.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: fy.FiscalYearID, PeriodStart: &start}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DistributionServiceTestSuite) TestRecompute_RefreshSplitOnRejected() {
	ctx := context.Background()
	current := suite.existing(domain.DistributionRejected)
	current.Split = domain.SplitConfig{NazerPercent: pct("5"), CharityPercent: pct("5"), CorpusPercent: pct("5")}
	suite.mockDistributionRepo.On("FindDistributionByID", ctx, current.DistributionID).Return(current, nil).Once()
	suite.expectYearAndLedger(ctx, suite.snapshot)
	suite.mockBeneficiaryRepo.On("ListBeneficiaries", ctx, false).Return(suite.beneficiaries, nil).Once()
	suite.mockDistributionRepo.On("SaveRevision", ctx, mock.AnythingOfType("domain.Distribution"), int64(3)).Return(nil).Once()

	d, err := suite.service.Recompute(ctx, current.DistributionID, true, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.split, d.Split)
	suite.Equal(domain.DistributionPending, d.Status)
	suite.True(d.NazerShare.Equal(decimal.NewFromInt(6000)))
}

func (suite *DistributionServiceTestSuite) TestRecompute_KeepsFrozenSplit() {
	ctx := context.Background()
	current := suite.existing(domain.DistributionRejected)
	current.Split = domain.SplitConfig{NazerPercent: pct("5"), CharityPercent: pct("5"), CorpusPercent: pct("5")}
	suite.mockDistributionRepo.On("FindDistributionByID", ctx, current.DistributionID).Return(current, nil).Once()
	suite.expectYearAndLedger(ctx, suite.snapshot)
	suite.mockBeneficiaryRepo.On("ListBeneficiaries", ctx, false).Return(suite.beneficiaries, nil).Once()
	suite.mockDistributionRepo.On("SaveRevision", ctx, mock.Anything, int64(3)).Return(nil).Once()

	d, err := suite.service.Recompute(ctx, current.DistributionID, false, suite.userID)

	suite.Require().NoError(err)
	suite.True(d.NazerShare.Equal(decimal.NewFromInt(3000)))
}

func (suite *DistributionServiceTestSuite) TestComputeDistribution_YearClosedBeforeInsert() {
	ctx := context.Background()
	suite.expectYearAndLedger(ctx, suite.snapshot)
	suite.mockDistributionRepo.On("FindDistributionByPeriod", ctx, suite.period).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBeneficiaryRepo.On("ListBeneficiaries", ctx, false).Return(suite.beneficiaries, nil).Once()
	suite.mockDistributionRepo.On("CreateDistribution", ctx, mock.Anything).
		Return(apperrors.PeriodLockedError(suite.fy.FiscalYearID, string(domain.FiscalYearClosed))).Once()

	_, err := suite.service.ComputeDistribution(ctx, dto.ComputeDistributionRequest{FiscalYearID: suite.fy.FiscalYearID}, suite.userID)

	suite.True(apperrors.HasCode(err, apperrors.CodePeriodLocked))
	suite.Empty(suite.events.topics())
}

func (suite *DistributionServiceTestSuite) TestRecompute_Refused() {
	tests := []struct {
		name       string
		status     domain.DistributionStatus
		yearStatus domain.FiscalYearStatus
		wantCode   apperrors.Code
	}{
		{"approved distribution", domain.DistributionApproved, domain.FiscalYearOpen, apperrors.CodeInvalidTransition},
		{"approved distribution in published year", domain.DistributionApproved, domain.FiscalYearPublished, apperrors.CodeInvalidTransition},
		{"rejected in closed year", domain.DistributionRejected, domain.FiscalYearClosed, apperrors.CodePeriodLocked},
		{"rejected in published year", domain.DistributionRejected, domain.FiscalYearPublished, apperrors.CodePeriodLocked},
		{"pending in closed year", domain.DistributionPending, domain.FiscalYearClosed, apperrors.CodePeriodLocked},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			ctx := context.Background()
			current := suite.existing(tt.status)
			fy := suite.fy
			fy.Status = tt.yearStatus
			suite.mockDistributionRepo.On("FindDistributionByID", ctx, current.DistributionID).Return(current, nil).Once()
			suite.mockFiscalYearRepo.On("FindFiscalYearByID", ctx, fy.FiscalYearID).Return(&fy, nil).Maybe()

			_, err := suite.service.Recompute(ctx, current.DistributionID, false, suite.userID)

			suite.ErrorIs(err, apperrors.ErrState)
			suite.True(apperrors.HasCode(err, tt.wantCode))
			suite.mockLedger.AssertNotCalled(suite.T(), "LedgerSnapshot", mock.Anything, mock.Anything, mock.Anything)
			suite.mockDistributionRepo.AssertNotCalled(suite.T(), "SaveRevision", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func (suite *DistributionServiceTestSuite) TestGeneratePaymentVouchers_NotApproved() {
	ctx := context.Background()
	current := suite.existing(domain.DistributionPending)
	suite.mockDistributionRepo.On("FindDistributionByID", ctx, current.DistributionID).Return(current, nil).Once()

	_, err := suite.service.GeneratePaymentVouchers(ctx, current.DistributionID, suite.userID)

	suite.True(apperrors.HasCode(err, apperrors.CodeNotPayable))
}

func (suite *DistributionServiceTestSuite) TestGeneratePaymentVouchers_CurrentRevisionOnly() {
	ctx := context.Background()
	current := suite.existing(domain.DistributionApproved)
	current.Revision = 2
	current.Details = []domain.DistributionDetail{
		{DetailID: "old", Revision: 1, PaymentStatus: domain.PaymentCancelled},
		{DetailID: "d-a", Revision: 2, PaymentStatus: domain.PaymentPending},
		{DetailID: "d-b", Revision: 2, PaymentStatus: domain.PaymentPending},
	}
	suite.mockDistributionRepo.On("FindDistributionByID", ctx, current.DistributionID).Return(current, nil).Twice()
	suite.mockDistributionRepo.On("IssueVouchers", ctx, current.DistributionID, mock.MatchedBy(func(v map[string]string) bool {
		_, hasOld := v["old"]
		return len(v) == 2 && !hasOld && v["d-a"] != v["d-b"]
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err := suite.service.GeneratePaymentVouchers(ctx, current.DistributionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockDistributionRepo.AssertExpectations(suite.T())
}

func (suite *DistributionServiceTestSuite) TestMarkDetailPaid() {
	ctx := context.Background()
	current := suite.existing(domain.DistributionApproved)
	detail := &domain.DistributionDetail{DetailID: "d-a", DistributionID: current.DistributionID, Revision: 1, PaymentStatus: domain.PaymentPending}
	paidAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	suite.mockDistributionRepo.On("FindDetailByID", ctx, "d-a").Return(detail, nil).Once()
	suite.mockDistributionRepo.On("FindDistributionByID", ctx, current.DistributionID).Return(current, nil).Once()
	suite.mockDistributionRepo.On("UpdateDetailPayment", ctx, "d-a", domain.PaymentPending, domain.PaymentPaid, &paidAt, "").Return(nil).Once()

	paid, err := suite.service.MarkDetailPaid(ctx, "d-a", paidAt, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, paid.PaymentStatus)
	suite.Equal(paidAt, *paid.PaymentDate)
}

func (suite *DistributionServiceTestSuite) TestMarkDetailPaid_AlreadyPaid() {
	ctx := context.Background()
	suite.mockDistributionRepo.On("FindDetailByID", ctx, "d-a").
		Return(&domain.DistributionDetail{DetailID: "d-a", PaymentStatus: domain.PaymentPaid}, nil).Once()

	_, err := suite.service.MarkDetailPaid(ctx, "d-a", time.Now(), suite.userID)

	suite.True(apperrors.HasCode(err, apperrors.CodeInvalidTransition))
	suite.mockDistributionRepo.AssertNotCalled(suite.T(), "UpdateDetailPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DistributionServiceTestSuite) TestCancelDetail_KeepsRow() {
	ctx := context.Background()
	suite.mockDistributionRepo.On("FindDetailByID", ctx, "d-a").
		Return(&domain.DistributionDetail{DetailID: "d-a", PaymentStatus: domain.PaymentPending}, nil).Once()
	suite.mockDistributionRepo.On("UpdateDetailPayment", ctx, "d-a", domain.PaymentPending, domain.PaymentCancelled, (*time.Time)(nil), "beneficiary deceased").Return(nil).Once()

	det, err := suite.service.CancelDetail(ctx, "d-a", "beneficiary deceased", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentCancelled, det.PaymentStatus)
	suite.Equal("beneficiary deceased", det.CancelReason)
}

func TestDistributionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DistributionServiceTestSuite))
}
