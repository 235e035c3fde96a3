// Package fakebackend provides an in-process assistant backend for tests and
// local development.
//
// The server implements POST /api/chat and POST /api/cancel. Every accepted
// request is recorded so tests can assert on the exact headers and body the
// client sent. With WithVerifier, requests must carry a bearer token accepted
// by the verifier; the token subject is recorded with the request.
package fakebackend
