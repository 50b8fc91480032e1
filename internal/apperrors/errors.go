package apperrors

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrState indicates the entity is not in a state that allows the operation.
var ErrState = errors.New("invalid state for operation")

// ErrConflict indicates a lost optimistic race; the caller must re-read and retry.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrIntegrity indicates a financial integrity violation that requires human review.
var ErrIntegrity = errors.New("integrity violation")

// ErrForbidden indicates the caller lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnavailable indicates the operation gave up before finishing; it left no
// changes behind and may be retried.
var ErrUnavailable = errors.New("operation unavailable")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// Kind classifies an AppError for propagation and HTTP mapping.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindState       Kind = "STATE"
	KindConflict    Kind = "CONFLICT"
	KindIntegrity   Kind = "INTEGRITY"
	KindNotFound    Kind = "NOT_FOUND"
	KindForbidden   Kind = "FORBIDDEN"
	KindUnavailable Kind = "UNAVAILABLE"
	KindInternal    Kind = "INTERNAL"
)

// Sentinel returns the package sentinel matching the kind.
func (k Kind) Sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindState:
		return ErrState
	case KindConflict:
		return ErrConflict
	case KindIntegrity:
		return ErrIntegrity
	case KindNotFound:
		return ErrNotFound
	case KindForbidden:
		return ErrForbidden
	case KindUnavailable:
		return ErrUnavailable
	case KindInternal:
		return ErrInternal
	}
	return ErrInternal
}

// Code names the specific failing constraint.
type Code string

const (
	CodeUnbalancedEntry             Code = "UNBALANCED_ENTRY"
	CodeClosedPeriod                Code = "CLOSED_PERIOD"
	CodeInvalidAccount              Code = "INVALID_ACCOUNT"
	CodeInvalidLine                 Code = "INVALID_LINE"
	CodeReferenceIntegrity          Code = "REFERENCE_INTEGRITY"
	CodeNoEligibleBeneficiaries     Code = "NO_ELIGIBLE_BENEFICIARIES"
	CodeNegativeDistributableAmount Code = "NEGATIVE_DISTRIBUTABLE_AMOUNT"
	CodePeriodLocked                Code = "PERIOD_LOCKED"
	CodeConflict                    Code = "CONFLICT"
	CodeStaleDistribution           Code = "STALE_DISTRIBUTION"
	CodeReconciliationDiscrepancy   Code = "RECONCILIATION_DISCREPANCY"
	CodeUnmatchedTransactions       Code = "UNMATCHED_TRANSACTIONS"
	CodeRoundingLeakage             Code = "ROUNDING_LEAKAGE"
	CodeApprovalDecided             Code = "APPROVAL_DECIDED"
	CodeApprovalOutOfOrder          Code = "APPROVAL_OUT_OF_ORDER"
	CodeNotPayable                  Code = "NOT_PAYABLE"
	CodeInvalidTransition           Code = "INVALID_TRANSITION"
	CodeCloseBlocked                Code = "CLOSE_BLOCKED"
	CodeCloseTimeout                Code = "CLOSE_TIMEOUT"
	CodeInvalidInput                Code = "INVALID_INPUT"
	CodeForbidden                   Code = "FORBIDDEN"
)

// AppError carries the kind, the offending entity and, where relevant, the
// numeric delta so the calling layer can render a precise message.
type AppError struct {
	Kind     Kind
	Code     Code
	Message  string
	EntityID string
	// CurrentState is set for state errors so callers can refresh.
	CurrentState string
	Delta        *decimal.Decimal
	Details      []string
	Err          error
}

func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.EntityID != "" {
		fmt.Fprintf(&b, " (entity %s)", e.EntityID)
	}
	if e.CurrentState != "" {
		fmt.Fprintf(&b, " [state %s]", e.CurrentState)
	}
	if e.Delta != nil {
		fmt.Fprintf(&b, " [delta %s]", e.Delta.String())
	}
	if len(e.Details) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Details, "; "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Is lets errors.Is match an AppError against its kind sentinel.
func (e *AppError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError of the given kind and code.
func NewAppError(kind Kind, code Code, message string, err error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}

// WithEntity sets the offending entity id.
func (e *AppError) WithEntity(id string) *AppError {
	e.EntityID = id
	return e
}

// WithState attaches the entity's current state.
func (e *AppError) WithState(state string) *AppError {
	e.CurrentState = state
	return e
}

// WithDelta attaches the numeric delta.
func (e *AppError) WithDelta(d decimal.Decimal) *AppError {
	e.Delta = &d
	return e
}

// WithDetails appends human-readable reasons.
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = append(e.Details, details...)
	return e
}

// AsAppError extracts an AppError from the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code Code) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// UnbalancedEntryError reports debits != credits; delta = debits - credits.
func UnbalancedEntryError(entryID string, delta decimal.Decimal) *AppError {
	return NewAppError(KindValidation, CodeUnbalancedEntry, "total debits do not equal total credits", nil).
		WithEntity(entryID).WithDelta(delta)
}

func ClosedPeriodError(fiscalYearID, state string) *AppError {
	return NewAppError(KindState, CodeClosedPeriod, "fiscal year does not accept postings", nil).
		WithEntity(fiscalYearID).WithState(state)
}

func InvalidAccountError(accountID, reason string) *AppError {
	return NewAppError(KindValidation, CodeInvalidAccount, reason, nil).WithEntity(accountID)
}

func InvalidLineError(lineNumber int, reason string) *AppError {
	return NewAppError(KindValidation, CodeInvalidLine, fmt.Sprintf("line %d: %s", lineNumber, reason), nil)
}

func ReferenceIntegrityError(entryID, reason string) *AppError {
	return NewAppError(KindState, CodeReferenceIntegrity, reason, nil).WithEntity(entryID)
}

func NoEligibleBeneficiariesError() *AppError {
	return NewAppError(KindValidation, CodeNoEligibleBeneficiaries, "no active beneficiary with a positive share", nil)
}

// NegativeDistributableAmountError carries the deficit as a negative delta.
func NegativeDistributableAmountError(fiscalYearID string, net decimal.Decimal) *AppError {
	return NewAppError(KindValidation, CodeNegativeDistributableAmount, "expenses exceed revenues for the period", nil).
		WithEntity(fiscalYearID).WithDelta(net)
}

func PeriodLockedError(fiscalYearID, state string) *AppError {
	return NewAppError(KindState, CodePeriodLocked, "fiscal year is locked", nil).
		WithEntity(fiscalYearID).WithState(state)
}

func ConflictError(entityID, message string) *AppError {
	return NewAppError(KindConflict, CodeConflict, message, ErrConflict).WithEntity(entityID)
}

func StaleDistributionError(distributionID string, revenueDelta decimal.Decimal) *AppError {
	return NewAppError(KindConflict, CodeStaleDistribution, "ledger changed since computation; recompute required", nil).
		WithEntity(distributionID).WithDelta(revenueDelta)
}

// ReconciliationDiscrepancyError carries closing - computed.
func ReconciliationDiscrepancyError(statementID string, discrepancy decimal.Decimal) *AppError {
	return NewAppError(KindIntegrity, CodeReconciliationDiscrepancy, "computed closing balance differs from statement", nil).
		WithEntity(statementID).WithDelta(discrepancy)
}

func UnmatchedTransactionsError(statementID string, txnIDs []string) *AppError {
	return NewAppError(KindIntegrity, CodeUnmatchedTransactions, "statement has unmatched transactions", nil).
		WithEntity(statementID).WithDetails(txnIDs...)
}

func RoundingLeakageError(entityID string, residual decimal.Decimal) *AppError {
	return NewAppError(KindIntegrity, CodeRoundingLeakage, "rounding residual exceeds tolerance", nil).
		WithEntity(entityID).WithDelta(residual)
}

func ApprovalDecidedError(entityID, state string) *AppError {
	return NewAppError(KindState, CodeApprovalDecided, "approval already decided", nil).
		WithEntity(entityID).WithState(state)
}

func NotPayableError(distributionID, state string) *AppError {
	return NewAppError(KindState, CodeNotPayable, "distribution is not approved", nil).
		WithEntity(distributionID).WithState(state)
}

func InvalidTransitionError(entityID, from, to string) *AppError {
	return NewAppError(KindState, CodeInvalidTransition, fmt.Sprintf("cannot move from %s to %s", from, to), nil).
		WithEntity(entityID).WithState(from)
}

func CloseBlockedError(fiscalYearID string, reasons []string) *AppError {
	return NewAppError(KindState, CodeCloseBlocked, "fiscal year cannot be closed", nil).
		WithEntity(fiscalYearID).WithDetails(reasons...)
}

// CloseTimeoutError wraps the deadline error of a close that ran out of time.
func CloseTimeoutError(fiscalYearID string, timeout time.Duration, err error) *AppError {
	return NewAppError(KindUnavailable, CodeCloseTimeout, fmt.Sprintf("close did not finish within %s", timeout), err).
		WithEntity(fiscalYearID)
}

// InvalidInputError is a validation failure that names no specific ledger rule.
func InvalidInputError(format string, args ...any) *AppError {
	return NewAppError(KindValidation, CodeInvalidInput, fmt.Sprintf(format, args...), nil)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(KindForbidden, CodeForbidden, message, nil)
}
