package staking

import (
	"github.com/pkg/errors"

	"github.com/multiversed/staking-server/pkg/solana"
	stake_pool "github.com/multiversed/staking-server/pkg/solana/stakepool"
)

// Kind classifies where in an operation's lifecycle a failure occurred.
type Kind uint8

const (
	KindUnknown Kind = iota

	// KindDerivation indicates malformed inputs to address derivation.
	// These failures are deterministic and retrying won't help.
	KindDerivation

	// KindAccountResolution indicates the token account couldn't be
	// found or provisioned.
	KindAccountResolution

	// KindSubmission indicates the ledger rejected the transaction.
	KindSubmission

	// KindUnconfirmed indicates the transaction was accepted but
	// confirmation wasn't observed within the poll budget. The ledger
	// state is indeterminate and callers should re-query.
	KindUnconfirmed

	// KindNotFound indicates the requested account doesn't exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindDerivation:
		return "derivation"
	case KindAccountResolution:
		return "account_resolution"
	case KindSubmission:
		return "submission"
	case KindUnconfirmed:
		return "unconfirmed"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Error wraps a failure with its lifecycle classification.
type Error struct {
	Kind  Kind
	Cause error
}

func newError(kind Kind, cause error) *Error {
	return &Error{
		Kind:  kind,
		Cause: cause,
	}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var typed *Error
	if !errors.As(err, &typed) {
		return false
	}
	return typed.Kind == kind
}

// Well known ledger rejections surfaced by submission errors.
var (
	ErrAlreadyInitialized = errors.New("staking pool already initialized")
	ErrInsufficientStake  = errors.New("unstake amount exceeds staked balance")
	ErrStakeNotFound      = errors.New("user staking account not found")
)

// classifySubmission maps a transaction error from the ledger onto the
// staking program's custom error codes where possible.
func classifySubmission(err error) *Error {
	var customErr solana.CustomError
	if errors.As(err, &customErr) {
		switch customErr {
		case stake_pool.ErrorAlreadyInitialized:
			return newError(KindSubmission, ErrAlreadyInitialized)
		case stake_pool.ErrorInsufficientStakedBalance, stake_pool.ErrorInsufficientBalance:
			return newError(KindSubmission, ErrInsufficientStake)
		}
	}

	return newError(KindSubmission, err)
}
