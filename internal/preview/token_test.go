package preview

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	tenant := uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	page := uuid.MustParse("00000000-0000-0000-0000-0000000000b2")
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(30 * time.Minute)

	token := Encode(tenant, page, expiry)

	claims, err := Decode(token, now)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.TenantID != tenant {
		t.Fatalf("unexpected tenant %s", claims.TenantID)
	}
	if claims.PageID != page {
		t.Fatalf("unexpected page %s", claims.PageID)
	}
	if !claims.ExpiresAt.Equal(expiry.Truncate(time.Second)) {
		t.Fatalf("unexpected expiry %s", claims.ExpiresAt)
	}
}

func TestTokenExpired(t *testing.T) {
	tenant := uuid.New()
	page := uuid.New()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	token := Encode(tenant, page, now.Add(30*time.Minute))

	if _, err := Decode(token, now.Add(31*time.Minute)); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenStructuralFailures(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := map[string]string{
		"not base64":      "!!!not-base64!!!",
		"two segments":    base64.RawURLEncoding.EncodeToString([]byte("a:b")),
		"four segments":   base64.RawURLEncoding.EncodeToString([]byte("a:b:c:d")),
		"bad tenant":      base64.RawURLEncoding.EncodeToString([]byte("nope:" + uuid.NewString() + ":100")),
		"bad page":        base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString() + ":nope:100")),
		"bad expiry":      base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString() + ":" + uuid.NewString() + ":soon")),
		"empty token":     "",
		"delimiters only": base64.RawURLEncoding.EncodeToString([]byte("::")),
	}

	for name, token := range cases {
		if _, err := Decode(token, now); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
