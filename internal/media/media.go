// Package media describes the contract with an external file host: hand it a
// byte stream, get back a durable URL.
package media

// UploadError is the upstream failure relayed to API clients.
type UploadError struct {
	Message string `json:"message"`
}

func (e *UploadError) Error() string {
	return e.Message
}
