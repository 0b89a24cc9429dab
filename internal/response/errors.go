package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation         ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload     ErrCode = "INVALID_PAYLOAD"
	ErrSubmissionNotArray ErrCode = "SUBMISSION_NOT_ARRAY"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrQuizNotFound         ErrCode = "QUIZ_NOT_FOUND"
	ErrAnnouncementNotFound ErrCode = "ANNOUNCEMENT_NOT_FOUND"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden ErrCode = "FORBIDDEN"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrSubmissionNotArray:
		return "Submission must be an array of answers."
	case ErrQuizNotFound:
		return "Quiz not found"
	case ErrAnnouncementNotFound:
		return "Announcement not found"
	case ErrForbidden:
		return "You are not allowed to perform this action."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "Server Error"
	default:
		return "An unexpected error occurred."
	}
}
