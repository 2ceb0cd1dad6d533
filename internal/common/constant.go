// Package common contains constants, sentinel errors and small helpers shared
// by the GopherFlow server packages.
package common

// AccessTokenHeaderName is the response header that carries the session token
// issued at sign-in.
const AccessTokenHeaderName = "access-token"

// AuthorizationHeaderName carries either Basic credentials (sign-in) or the
// session token (every other protected call).
const AuthorizationHeaderName = "Authorization"
