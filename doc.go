// Package auth is the request-authentication pipeline for the ddip backend.
// It establishes caller identity on every inbound request with short-lived
// bearer tokens, supports password and federated login, revokes tokens ahead
// of their natural expiry, and gates accounts whose registration is still
// incomplete.
//
// The pipeline composes from independent pieces:
//
//   - TokenService signs and verifies the access/refresh token pair.
//   - RevocationStore blacklists logged-out tokens for exactly their
//     remaining lifetime (redis-backed, entries self-expire).
//   - Resolver maps token subjects and federated profiles onto canonical
//     identity records, creating inactive placeholders on first federated
//     sight.
//   - TokenAuth is the per-request middleware stage; it attaches an
//     AuthContext or downgrades the request to anonymous.
//   - ErrorHandler is the single place pipeline failures become wire
//     responses.
//
// Authorization beyond "is this caller identified and active" is the
// caller's responsibility; RequireAuthenticated and RequireRole are the
// hooks downstream routes compose for that.
package auth
