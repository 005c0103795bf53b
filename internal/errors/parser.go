package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a safe message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError turns database and driver errors into user-facing codes without
// leaking schema details. context is a short hint like "company" or "review".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "an internal error occurred"}
	}

	errStr := err.Error()
	errLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// PostgreSQL constraint violations.
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}
	if strings.Contains(errLower, "foreign key constraint") {
		return ErrorInfo{Code: ResourceNotFound, Message: "referenced record does not exist"}
	}
	if strings.Contains(errLower, "null value") && strings.Contains(errLower, "violates not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "a required field is missing"}
	}
	if strings.Contains(errLower, "check constraint") {
		return ErrorInfo{Code: ValidationInvalidInput, Message: "a field value is out of range"}
	}

	// Network errors from Redis, S3 or SMTP.
	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "an external service is unavailable, please try again later",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: "an internal error occurred, please try again later"}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "email is already registered"}
	case strings.Contains(errLower, "slug"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "directory name is already taken"}
	case strings.Contains(errLower, "transaction_id"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "payment was already recorded"}
	case strings.Contains(errLower, "verification_token"):
		return ErrorInfo{Code: ResourceConflict, Message: "verification token collision, please retry"}
	case strings.Contains(errLower, "review_id"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "this review already has an evaluation"}
	case strings.Contains(errLower, "evaluation_id"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "this evaluation already has an issue"}
	case strings.Contains(errLower, "company_id"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "this company already has a questionnaire"}
	default:
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "record already exists"}
	}
}

func notFoundMessage(context string) string {
	switch strings.ToLower(context) {
	case "company":
		return "company not found"
	case "user":
		return "user not found"
	case "review":
		return "review not found"
	case "evaluation":
		return "evaluation not found"
	case "issue":
		return "issue not found"
	case "questionnaire":
		return "questionnaire not found"
	default:
		return "requested record not found"
	}
}
