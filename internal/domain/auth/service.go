package auth

import "context"

// AuthService authenticates panel principals. The attendance engine never
// sees credentials; it only consumes the worker identity resolved here.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error)
	// LoginWithGoogle resolves a Google OAuth authorization code to a token
	// pair for a known worker email.
	LoginWithGoogle(ctx context.Context, code string) (TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error)
}
