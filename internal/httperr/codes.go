package httperr

// Business error codes shared by the domain and the HTTP layer.
const (
	CodeDuplicateEntry    = "duplicate_entry"
	CodeInvalidInput      = "invalid_input"
	CodeInvalidTransition = "invalid_transition"
	CodeStoreUnavailable  = "store_unavailable"
	CodeForbidden         = "forbidden"
	CodeEmailTaken        = "email_already_exists"

	CodeInvalidCredentials = "invalid_credentials"
	CodeAdminRequired      = "admin_required"
	CodeInvalidEmailDomain = "invalid_email_domain"

	CodeQueueEntryNotFound = "queue_entry_not_found"
	CodeSalonNotFound      = "salon_not_found"
	CodeServiceNotFound    = "service_not_found"
	CodeOfferNotFound      = "offer_not_found"
	CodeVisitNotFound      = "visit_not_found"
	CodeUserNotFound       = "user_not_found"
)

var (
	ErrDuplicateEntry    = ErrBusiness(CodeDuplicateEntry)
	ErrInvalidInput      = ErrBusiness(CodeInvalidInput)
	ErrInvalidTransition = ErrBusiness(CodeInvalidTransition)
	ErrStoreUnavailable  = ErrBusiness(CodeStoreUnavailable)
	ErrForbidden         = ErrBusiness(CodeForbidden)
	ErrEmailTaken        = ErrBusiness(CodeEmailTaken)

	ErrInvalidCredentials = ErrBusiness(CodeInvalidCredentials)
	ErrAdminRequired      = ErrBusiness(CodeAdminRequired)
	ErrInvalidEmailDomain = ErrBusiness(CodeInvalidEmailDomain)

	ErrQueueEntryNotFound = ErrBusiness(CodeQueueEntryNotFound)
	ErrSalonNotFound      = ErrBusiness(CodeSalonNotFound)
	ErrServiceNotFound    = ErrBusiness(CodeServiceNotFound)
	ErrOfferNotFound      = ErrBusiness(CodeOfferNotFound)
	ErrVisitNotFound      = ErrBusiness(CodeVisitNotFound)
	ErrUserNotFound       = ErrBusiness(CodeUserNotFound)
)

// StatusFor maps a business code onto an HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeDuplicateEntry, CodeEmailTaken:
		return 409
	case CodeQueueEntryNotFound, CodeSalonNotFound, CodeServiceNotFound,
		CodeOfferNotFound, CodeVisitNotFound, CodeUserNotFound:
		return 404
	case CodeInvalidInput, CodeInvalidTransition, CodeInvalidEmailDomain:
		return 400
	case CodeInvalidCredentials:
		return 401
	case CodeForbidden, CodeAdminRequired:
		return 403
	case CodeStoreUnavailable:
		return 503
	default:
		return 400
	}
}
