package responses

// Success wraps every 2xx JSON body.
type Success struct {
	Data any `json:"data"`
}

// ErrorBody is the public part of a failed request. Details is only set for
// codes whose metadata allows it.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Failure wraps every error JSON body.
type Failure struct {
	Error ErrorBody `json:"error"`
}
