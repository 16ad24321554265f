package server

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/validation"
)

// codeFor maps an error kind onto its connect code.
func codeFor(err error) connect.Code {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return connect.CodeInvalidArgument
	case errors.Is(err, apperr.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, apperr.ErrDuplicateTag):
		return connect.CodeAlreadyExists
	case errors.Is(err, apperr.ErrQuotaExceeded):
		return connect.CodeResourceExhausted
	case errors.Is(err, apperr.ErrInvalidState):
		return connect.CodeAborted
	case errors.Is(err, apperr.ErrInsufficientData):
		return connect.CodeFailedPrecondition
	case errors.Is(err, apperr.ErrAdapter):
		return connect.CodeUnavailable
	}
	return connect.CodeInternal
}

// toConnectError converts a service error, attaching the offending field of
// validation errors as a BadRequest detail.
func toConnectError(err error, logger *slog.Logger) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	code := codeFor(err)
	if code == connect.CodeInternal || code == connect.CodeUnavailable {
		logger.Error("request failed", slog.String("code", code.String()), slog.Any("error", err))
	}
	connectErr = connect.NewError(code, err)

	var validationErr *apperr.ValidationError
	if errors.As(err, &validationErr) && validationErr.Field != "" {
		addFieldViolations(connectErr, []validation.FieldViolation{{
			Field:       validationErr.Field,
			Description: validationErr.Message,
		}})
	}
	return connectErr
}

// invalidRequest is the error for a request message failing its validate tags.
func invalidRequest(violations []validation.FieldViolation) *connect.Error {
	connectErr := connect.NewError(connect.CodeInvalidArgument, errors.New(validation.Join(violations)))
	addFieldViolations(connectErr, violations)
	return connectErr
}

func addFieldViolations(connectErr *connect.Error, violations []validation.FieldViolation) {
	fieldViolations := make([]*errdetails.BadRequest_FieldViolation, 0, len(violations))
	for _, v := range violations {
		fieldViolations = append(fieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       v.Field,
			Description: v.Description,
		})
	}
	if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
		FieldViolations: fieldViolations,
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
}
