package httperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/contract-ledger/backend/internal/ledger"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Error string `json:"error" example:"there is no contract matching your query"`
}

// New writes a JSON error response on the fly.
func New(c *gin.Context, status int, msgAndArgs ...any) {
	// Format msgAndArgs in a final string.
	// This is taken almost exactly from https://github.com/stretchr/testify/blob/181cea6eab8b2de7071383eca4be32a424db38dd/assert/assertions.go#L181
	msg := ""
	if len(msgAndArgs) == 1 {
		if msgAsStr, ok := msgAndArgs[0].(string); ok {
			msg = msgAsStr
		}
		msg = fmt.Sprintf("%+v", msg)
	}

	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}

	c.JSON(status, HTTPError{
		Error: msg,
	})
}

// Handler writes the error with the status code matching it.
func Handler(c *gin.Context, err error) {
	s := Status(err)
	if s == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	New(c, s, err.Error())
}

// Status returns the appropriate HTTP status for an error
func Status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, ledger.ErrNotFound) || errors.Is(err, ledger.ErrSubElementNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, ledger.ErrConcurrencyConflict) || errors.Is(err, models.ErrDatabaseBusy) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}
