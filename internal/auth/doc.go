// Package auth provides bearer token handling for assistant backends.
//
// # Token Issuing
//
// A TokenIssuer signs a short-lived HS256 JWT for a fixed subject on every
// call. Its Headers method plugs into the assistant client as a header source:
//
//	issuer, err := auth.NewTokenIssuer(secret, "cli-user", 15*time.Minute)
//	client := assistant.NewClient(baseURL,
//	    assistant.WithHeaders(assistant.HeaderFunc(issuer.Headers)))
//
// Tokens carry sub, iat and exp claims. Secrets shorter than MinSecretLength
// are rejected. If signing fails, Headers returns nil and logs a warning to
// the logger set with WithIssuerLogger.
//
// # Verification
//
// Verifier checks tokens signed with the same secret and returns the subject.
// BearerMiddleware wraps an http.Handler, answers 401 with a JSON error for
// missing or invalid tokens, and stores the subject in the request context
// (see SubjectFromContext).
package auth
