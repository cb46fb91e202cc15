package v1

import (
	"errors"

	"github.com/contract-ledger/backend/pkg/httperrors"
)

// status returns the appropriate status for an error
func status(err error) int {
	return httperrors.Status(err)
}

var errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")

var (
	errLedgerField         = errors.New("the contract value and the measured value can only be changed by posting sub-elements")
	errUserCredentialEmpty = errors.New("the password must not be empty")
)
