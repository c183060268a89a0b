package api

// LookupRequest is the JSON body of a POST lookup.
type LookupRequest struct {
	// Sender is the resolver contract that raised OffchainLookup, 0x-prefixed.
	Sender string `json:"sender"`

	// Data is the hex-encoded resolve(bytes,bytes) calldata.
	Data string `json:"data"`
}

// LookupResponse carries the hex-encoded (bytes,uint64,bytes) envelope.
type LookupResponse struct {
	Data string `json:"data"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RequestError pairs an error with the HTTP status it is reported with.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
