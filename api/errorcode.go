package api

import "github.com/jurandifr/AcheiPet/store"

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1020: "photo is required",
		1021: "valid latitude and longitude required",
		1022: "uploaded file is not a valid image",
		1023: "failed to store image",

		1101: store.ErrUserNotFound.Error(),

		1200: store.ErrReportNotFound.Error(),
		1201: "image not found",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorPhotoRequired      = errorJSON(1020)
	errorInvalidCoordinates = errorJSON(1021)
	errorInvalidImage       = errorJSON(1022)
	errorStoreImage         = errorJSON(1023)

	errorUserNotFound = errorJSON(1101)

	errorReportNotFound = errorJSON(1200)
	errorImageNotFound  = errorJSON(1201)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
