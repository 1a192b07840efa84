package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"hestia-ledger-api/internal/cache"
	"hestia-ledger-api/internal/model"
)

const (
	// TokenPrefix is the prefix for all session tokens
	TokenPrefix = "hlt_"

	// TokenTTL is the default token lifetime (1 hour)
	TokenTTL = 1 * time.Hour

	// TokenCacheKeyPrefix is the cache key prefix for tokens
	TokenCacheKeyPrefix = "token:"
)

// TokenService handles session token generation and validation. Tokens are
// bound to a signer identity and live in the cache for TokenTTL.
type TokenService struct {
	cache cache.Cache
}

// NewTokenService creates a new token service.
func NewTokenService(c cache.Cache) *TokenService {
	return &TokenService{cache: c}
}

// GenerateToken creates a new session token bound to signer.
func (s *TokenService) GenerateToken(ctx context.Context, signer model.Identity) (string, error) {
	if err := signer.Validate(); err != nil {
		return "", err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := TokenPrefix + hex.EncodeToString(tokenBytes)

	data := model.TokenData{Signer: signer}
	data.CreatedAt = time.Now()
	data.ExpiresAt = data.CreatedAt.Add(TokenTTL)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to serialize token data: %w", err)
	}

	key := TokenCacheKeyPrefix + token
	if err := s.cache.Set(ctx, key, jsonData, TokenTTL); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	log.Printf("[TokenService] Generated token for signer=%s, expires=%v", signer, data.ExpiresAt)

	return token, nil
}

// ValidateToken checks if a token is valid and returns its data.
func (s *TokenService) ValidateToken(ctx context.Context, token string) (*model.TokenData, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	if len(token) < len(TokenPrefix) || token[:len(TokenPrefix)] != TokenPrefix {
		return nil, fmt.Errorf("invalid token format")
	}

	key := TokenCacheKeyPrefix + token
	jsonData, err := s.cache.Get(ctx, key)
	if err == cache.ErrCacheMiss {
		return nil, fmt.Errorf("token not found or expired")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	var data model.TokenData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to parse token data: %w", err)
	}

	if time.Now().After(data.ExpiresAt) {
		s.cache.Delete(ctx, key)
		return nil, fmt.Errorf("token expired")
	}

	return &data, nil
}

// RevokeToken deletes a token.
func (s *TokenService) RevokeToken(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, TokenCacheKeyPrefix+token)
}

// RefreshToken extends the TTL of an existing token.
func (s *TokenService) RefreshToken(ctx context.Context, token string) error {
	key := TokenCacheKeyPrefix + token

	jsonData, err := s.cache.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("token not found: %w", err)
	}

	var data model.TokenData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return err
	}

	data.ExpiresAt = time.Now().Add(TokenTTL)

	newJSON, _ := json.Marshal(data)
	return s.cache.Set(ctx, key, newJSON, TokenTTL)
}
