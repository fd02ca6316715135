package errors

import "fmt"

var (
	// Token verification failures. All three leave the connection
	// unauthenticated; none of them is reported back to the client.
	ErrTokenExpired    = fmt.Errorf("token expired")
	ErrTokenMalformed  = fmt.Errorf("token malformed or badly signed")
	ErrTokenSuperseded = fmt.Errorf("token superseded by a newer one")

	ErrTokenGeneration = fmt.Errorf("token generation failed")

	ErrClientBufferFull = fmt.Errorf("client send buffer full")
	ErrClientClosed     = fmt.Errorf("client connection closed")

	ErrNotFound = fmt.Errorf("record not found")
)
