/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrFormParseFailed indicates failure to parse multipart form data.
	ErrFormParseFailed = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1006
)

// 2xxx: Economy and Chat Content Errors
const (
	// ErrUnknownItem indicates that the requested item key does not exist in the shop catalog.
	ErrUnknownItem = 2101

	// ErrInsufficientFunds indicates that the user's emerald balance cannot cover the item price.
	ErrInsufficientFunds = 2102

	// ErrMessageTooLong indicates that the chat message content exceeded the maximum length limit.
	ErrMessageTooLong = 2201
)

// 3xxx: Session and Moderation Errors
const (
	// ErrNicknameRequired indicates that the nickname was empty after trimming.
	ErrNicknameRequired = 3101

	// ErrNicknameTaken indicates that the nickname is currently bound to another live connection.
	ErrNicknameTaken = 3102

	// ErrBanned indicates that the nickname is present in the ban set.
	ErrBanned = 3103

	// ErrNotRegistered indicates that the connection has no nickname bound to it.
	ErrNotRegistered = 3104

	// ErrNotAuthorized indicates that a moderation command was sent without the admin flag.
	ErrNotAuthorized = 3105

	// ErrBadCredentials indicates that the admin password check failed.
	ErrBadCredentials = 3106
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrUploadFailed indicates that storing an uploaded avatar failed.
	ErrUploadFailed = 5001
)
