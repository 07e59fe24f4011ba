// Package token signs and verifies compact HMAC-SHA256 claim tokens
// (JWT-compatible wire format) for stateless bearer authentication.
//
// Verification is symmetric and requires no server-side token store, which
// keeps horizontal scaling free of shared state at the cost of no
// server-side revocation.
package token
