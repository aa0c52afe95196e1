package models

// Error kinds surfaced to API callers. Each carries a stable message that is
// safe to return verbatim; the HTTP layer maps the kind to a status code.

type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string { return e.Message }

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string { return e.Message }

var (
	ErrMissingFields      = ErrorValidation{Message: "Please provide all required fields"}
	ErrMissingCredentials = ErrorValidation{Message: "Please provide email and password"}
	ErrPasswordTooShort   = ErrorValidation{Message: "Password must be at least 6 characters"}
	ErrPasswordTooLong    = ErrorValidation{Message: "Password cannot be more than 72 bytes"}
	ErrNameTooLong        = ErrorValidation{Message: "Name cannot be more than 60 characters"}
	ErrInvalidArticleID   = ErrorValidation{Message: "Invalid article ID"}
	ErrInvalidCategory    = ErrorValidation{Message: "Invalid article category"}
	ErrInvalidTimeSpent   = ErrorValidation{Message: "Time spent must not be negative"}

	// Login failures never reveal whether the email exists.
	ErrInvalidCredentials = ErrorUnauthorized{Message: "Invalid email or password"}
	ErrNoToken            = ErrorUnauthorized{Message: "No token provided"}
	ErrInvalidToken       = ErrorUnauthorized{Message: "Invalid token"}

	ErrInsufficientRole = ErrorForbidden{Message: "Insufficient permissions"}

	ErrUserNotFound    = ErrorNotFound{Message: "User not found"}
	ErrArticleNotFound = ErrorNotFound{Message: "Article not found"}

	ErrEmailTaken = ErrorConflict{Message: "User already exists with this email"}

	ErrInternal = ErrorInternalServer{Message: "Internal server error"}
)
