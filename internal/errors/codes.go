package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to localized messages.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// Authorization (AUTHZ_)
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzAdvisorOnly  = "AUTHZ_ADVISOR_ONLY"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// Generic resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Certification (CERT_)
	CertCompanyNotFound    = "CERT_COMPANY_NOT_FOUND"
	CertInvalidTransition  = "CERT_INVALID_TRANSITION"
	CertInvalidScore       = "CERT_INVALID_SCORE"
	CertQuoteRequired      = "CERT_QUOTE_REQUIRED"
	CertQuoteNotApplicable = "CERT_QUOTE_NOT_APPLICABLE"
	CertPaymentRequired    = "CERT_PAYMENT_REQUIRED"
	CertPaymentMismatch    = "CERT_PAYMENT_AMOUNT_MISMATCH"
	CertSealNotRevoked     = "CERT_SEAL_NOT_REVOKED"
	CertSealIssuesRemain   = "CERT_SEAL_ISSUES_REMAIN"

	// Questionnaire (QUESTIONNAIRE_)
	QuestionnaireNotFound  = "QUESTIONNAIRE_NOT_FOUND"
	QuestionnaireCompleted = "QUESTIONNAIRE_COMPLETED"

	// Stakeholder reviews (REVIEW_)
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRole   = "REVIEW_INVALID_ROLE"
	ReviewTokenInvalid  = "REVIEW_TOKEN_INVALID"
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS"

	// Evaluations and issues (EVALUATION_)
	EvaluationNotFound       = "EVALUATION_NOT_FOUND"
	EvaluationInvalidStatus  = "EVALUATION_INVALID_STATUS"
	EvaluationNoResponse     = "EVALUATION_NO_RESPONSE"
	EvaluationNotAwaiting    = "EVALUATION_NOT_AWAITING_RESPONSE"
	EvaluationDeadlinePassed = "EVALUATION_DEADLINE_PASSED"

	// Upload (UPLOAD_)
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// Internal (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
