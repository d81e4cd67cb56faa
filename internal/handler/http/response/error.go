package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

// HandleError writes err using the status and code its classification
// carries. Field validation failures become 422 with per-field details;
// unclassified errors are logged and hidden behind a 500.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus < 400 || appErr.HTTPStatus >= 500 {
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	if appErr.Code == apperror.CodeValidation {
		BadRequest(w, appErr.Message, nil)
		return
	}
	Fail(w, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
}
