package assistant

import "fineo-backend/pkg/response"

var (
	ErrSessionNotFound = response.NewError(404, "no active assistant session")
	ErrSessionBusy     = response.NewError(409, "assistant is still replying")
	ErrEmptyMessage    = response.NewError(400, "message text cannot be empty")
	ErrPageNotFound    = response.NewError(404, "navigation page not found")
	ErrPagePathExists  = response.NewError(409, "navigation page path already exists")
	ErrInvalidYear     = response.NewError(400, "forecast year must be a four digit year")
)
