package strategy

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrGeneratorStatus is returned when the generator answers with a non-2xx status
	ErrGeneratorStatus = goerr.New("strategy generator returned error status")

	// ErrMalformedStrategyResponse is returned when the response body has no
	// usable "strategies" list
	ErrMalformedStrategyResponse = goerr.New("malformed strategy response")

	// ErrEmptyRequest is returned when a request carries no risk factor
	ErrEmptyRequest = goerr.New("strategy request has no risk factors")
)

const (
	// StatusCodeKey is the context key for HTTP status codes
	StatusCodeKey = "status_code"

	// EndpointKey is the context key for the generator endpoint
	EndpointKey = "endpoint"

	// ResponseKey is the context key for the raw generator response
	ResponseKey = "response"
)
