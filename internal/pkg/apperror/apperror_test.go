package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedErr struct{}

func (codedErr) Error() string     { return "coded" }
func (codedErr) ErrorCode() string { return CodeValidation }

func TestCodeOf(t *testing.T) {
	notFound := NotFound("thing not found")

	assert.Equal(t, CodeNotFound, CodeOf(notFound))
	assert.Equal(t, CodeNotFound, CodeOf(fmt.Errorf("lookup: %w", notFound)))
	assert.Equal(t, CodeValidation, CodeOf(codedErr{}))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &AppError{Code: CodeInternal, Message: "save failed", HTTPStatus: http.StatusInternalServerError, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save failed: disk full", err.Error())
}

func TestSentinelIdentity(t *testing.T) {
	sentinel := Forbidden("nope")
	wrapped := fmt.Errorf("decide: %w", sentinel)

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, Forbidden("nope"))
	assert.Equal(t, http.StatusForbidden, sentinel.HTTPStatus)
}
