package notion

// checkResponse validates a provider response after every transport
// round-trip. Status codes below 400 pass; anything else fails with a
// ProviderError carrying whatever the provider sent back. Failures are never
// retried here; they propagate straight to the caller.
func checkResponse(status int, reason string, body []byte) error {
	if status < 400 {
		return nil
	}
	return &ProviderError{StatusCode: status, Reason: reason, Body: body}
}
