package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/workdeskhq/workdesk-backend/internal/domain/auth"
	"github.com/workdeskhq/workdesk-backend/internal/domain/worker"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/jwt"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	worker.WorkerRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewAuthService(workerRepo worker.WorkerRepository, jwtService jwt.Service, googleService oauth.GoogleService) auth.AuthService {
	return &AuthServiceImpl{
		WorkerRepository: workerRepo,
		jwtService:       jwtService,
		googleService:    googleService,
	}
}

// Login implements auth.AuthService. A missing worker and a wrong password
// are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenPairResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenPairResponse{}, err
	}

	w, err := s.WorkerRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenPairResponse{}, err
	}
	if !w.Active {
		return auth.TokenPairResponse{}, worker.ErrWorkerInactive
	}
	if w.PasswordHash == nil {
		// SSO-only account, no password set.
		return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*w.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(w)
}

// LoginWithGoogle implements auth.AuthService. The Google account's verified
// email must belong to a known active worker; this flow never provisions.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.TokenPairResponse, error) {
	token, err := s.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("%w: %v", auth.ErrOAuthExchange, err)
	}

	info, err := s.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("%w: %v", auth.ErrOAuthExchange, err)
	}
	if !info.VerifiedEmail {
		return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
	}

	w, err := s.WorkerRepository.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenPairResponse{}, err
	}
	if !w.Active {
		return auth.TokenPairResponse{}, worker.ErrWorkerInactive
	}

	return s.issueTokens(w)
}

// Refresh implements auth.AuthService. The presented refresh token is
// revoked; each token refreshes exactly once.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenPairResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenPairResponse{}, auth.ErrRefreshTokenRevoked
	}

	decoded, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenPairResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := decoded.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.TokenPairResponse{}, auth.ErrInvalidToken
	}
	workerIDVal, ok := decoded.Get("worker_id")
	if !ok {
		return auth.TokenPairResponse{}, auth.ErrInvalidToken
	}
	workerID, ok := workerIDVal.(string)
	if !ok || workerID == "" {
		return auth.TokenPairResponse{}, auth.ErrInvalidToken
	}

	w, err := s.WorkerRepository.GetByID(ctx, workerID)
	if err != nil {
		return auth.TokenPairResponse{}, err
	}
	if !w.Active {
		return auth.TokenPairResponse{}, worker.ErrWorkerInactive
	}

	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(w)
}

func (s *AuthServiceImpl) issueTokens(w worker.Worker) (auth.TokenPairResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(w.ID, w.Email, w.Role)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(w.ID)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenPairResponse{
		AccessToken:  accessToken,
		ExpiresAt:    accessExp,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
		WorkerID:     w.ID,
		Role:         string(w.Role),
	}, nil
}
