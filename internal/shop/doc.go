// Package shop is the HTTP client for the storefront backend.
//
// The backend speaks JSON and wraps every response in a {success, message}
// envelope. A response with success=false is treated as a failure even when
// the HTTP status is 2xx; both cases surface as *APIError so callers can show
// the server's message via UserMessage.
//
// Cart calls carry the session token in the "token" header and a fresh
// X-Request-ID so that acknowledgements arriving out of order can be matched
// to the mutation that produced them.
package shop
