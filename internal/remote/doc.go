// Package remote implements the optional remote reaction lookup.
//
// The wire exchange is a single request/response:
//
//	POST /api/reactions/find
//	{"reactants": ["Na", "Cl"]}
//
//	200 OK
//	{"id": "sodium-chloride", "name": "Sodium Chloride Formation", ...}
//
// A miss is answered with null (an empty body or {} is accepted too).
//
// Client.FindReaction never fails: transport errors, unexpected status codes
// and malformed bodies are logged and reported as types.NoMatch. Lookup
// exposes the error for callers that want it. By default a lookup is tried
// once; RetryConfig.MaxAttempts enables exponential backoff retries.
//
// Successful lookups are cached per reactant set and concurrent lookups of
// the same set share one request.
//
// NewHandler serves the same endpoint from a local matcher, so one chemlab
// process can act as the remote for another.
package remote
