package response

// Standard messages and codes.
const (
	MessageSuccess      = "Success"
	MessageUnauthorized = "Invalid or missing API key"

	BadRequestErrorCode   = 1
	UnauthorizedErrorCode = 401
	NotFoundErrorCode     = 404
)
