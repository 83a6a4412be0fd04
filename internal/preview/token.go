package preview

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("preview: invalid token")
	ErrTokenExpired = errors.New("preview: token expired")
)

const tokenDelimiter = ":"

// Claims are the fields carried by a preview token.
type Claims struct {
	TenantID  uuid.UUID
	PageID    uuid.UUID
	ExpiresAt time.Time
}

// Encode packs tenant, page, and expiry into an opaque path-safe token.
// The token carries no signature; any holder can mint one. Access control
// belongs to the surrounding route layer.
func Encode(tenantID, pageID uuid.UUID, expiresAt time.Time) string {
	raw := strings.Join([]string{
		tenantID.String(),
		pageID.String(),
		strconv.FormatInt(expiresAt.Unix(), 10),
	}, tokenDelimiter)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode unpacks a token and validates its structure and expiry against now.
func Decode(token string, now time.Time) (Claims, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	parts := strings.Split(string(raw), tokenDelimiter)
	if len(parts) != 3 {
		return Claims{}, fmt.Errorf("%w: expected 3 segments, got %d", ErrInvalidToken, len(parts))
	}

	tenantID, err := uuid.Parse(parts[0])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: tenant id: %v", ErrInvalidToken, err)
	}
	pageID, err := uuid.Parse(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: page id: %v", ErrInvalidToken, err)
	}
	expiry, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: expiry: %v", ErrInvalidToken, err)
	}

	claims := Claims{
		TenantID:  tenantID,
		PageID:    pageID,
		ExpiresAt: time.Unix(expiry, 0).UTC(),
	}
	if now.After(claims.ExpiresAt) {
		return Claims{}, ErrTokenExpired
	}
	return claims, nil
}
