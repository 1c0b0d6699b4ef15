package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeBadRequest     ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_003"
	ErrCodeConflict       ErrorCode = "COMMON_004"
	ErrCodeTimeout        ErrorCode = "COMMON_005"
	ErrCodeValidation     ErrorCode = "COMMON_006"
	ErrCodeSerialization  ErrorCode = "COMMON_007"
	ErrCodeDatabaseError  ErrorCode = "COMMON_008"
	ErrCodeCacheError     ErrorCode = "COMMON_009"
	ErrCodeStorageError   ErrorCode = "COMMON_010"
	ErrCodeMessagingError ErrorCode = "COMMON_011"
	ErrCodeNotImplemented ErrorCode = "COMMON_012"
	ErrCodeInvalidState   ErrorCode = "COMMON_013"
)

// Case module error codes
const (
	ErrCodeCaseNotFound       ErrorCode = "CASE_001"
	ErrCodeCaseDataAccess     ErrorCode = "CASE_002"
	ErrCodeDocumentNotFound   ErrorCode = "CASE_003"
	ErrCodeSnapshotNotFound   ErrorCode = "CASE_004"
	ErrCodePracticeAreaInvalid ErrorCode = "CASE_005"
)

// Analysis engine error codes
const (
	// ErrCodeDegradedSignal marks a collaborator failure that was absorbed by
	// a fail-soft boundary. It is logged, never returned to callers.
	ErrCodeDegradedSignal ErrorCode = "ANL_001"

	ErrCodeRoleDetectionFailed  ErrorCode = "ANL_002"
	ErrCodeMeritsScoringFailed  ErrorCode = "ANL_003"
	ErrCodeDetectorFailed       ErrorCode = "ANL_004"
	ErrCodeRuleTableInvalid     ErrorCode = "ANL_005"
	ErrCodeChecklistUnavailable ErrorCode = "ANL_006"
)

// Aliases used throughout the codebase at call sites that predate the typed
// constant blocks above.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeValidation     = ErrCodeValidation
	CodeNotImplemented = ErrCodeNotImplemented
	CodeInvalidState   = ErrCodeInvalidState
	CodeUnknown        = ErrorCode("UNKNOWN")
	CodeOK             = ErrorCode("OK")
)
