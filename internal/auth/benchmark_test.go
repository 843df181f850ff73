package auth_test

import (
	"context"
	"testing"

	"chess-fen/internal/auth/adapter/security"
	"chess-fen/internal/auth/testutil"
)

func BenchmarkIssueAndVerifyToken(b *testing.B) {
	svc, err := security.NewJWTokenService(testutil.Config())
	if err != nil {
		b.Fatalf("token service: %v", err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		token, err := svc.GenerateToken(ctx, "user-1", "a@b.com")
		if err != nil {
			b.Fatalf("generate: %v", err)
		}
		if _, err := svc.ValidateToken(ctx, token); err != nil {
			b.Fatalf("validate: %v", err)
		}
	}
}

func BenchmarkPasswordCompare(b *testing.B) {
	hasher := security.NewBcryptHasher(testutil.Config().BcryptCost)
	hash, err := hasher.Hash(testutil.TestPassword)
	if err != nil {
		b.Fatalf("hash: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := hasher.Compare(hash, testutil.TestPassword); err != nil {
			b.Fatalf("compare: %v", err)
		}
	}
}
