/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
// Session and economy error messages mirror what the game clients display verbatim.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "No file", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Economy and Chat Content Errors
	ErrUnknownItem:       {Code: ErrUnknownItem, Message: "Invalid item"},
	ErrInsufficientFunds: {Code: ErrInsufficientFunds, Message: "Not enough emeralds"},
	ErrMessageTooLong:    {Code: ErrMessageTooLong, Message: "Message is too long"},

	// 3xxx: Session and Moderation Errors
	ErrNicknameRequired: {Code: ErrNicknameRequired, Message: "Nickname required"},
	ErrNicknameTaken:    {Code: ErrNicknameTaken, Message: "Nickname taken by another session"},
	ErrBanned:           {Code: ErrBanned, Message: "You are banned"},
	ErrNotRegistered:    {Code: ErrNotRegistered, Message: "Register first"},
	ErrNotAuthorized:    {Code: ErrNotAuthorized, Message: "Not authorized"},
	ErrBadCredentials:   {Code: ErrBadCredentials, Message: "Wrong password", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:      {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrUploadFailed: {Code: ErrUploadFailed, Message: "Avatar upload failed. Please try again.", Status: http.StatusInternalServerError},
}
