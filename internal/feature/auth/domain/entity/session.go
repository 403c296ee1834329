package entity

import "time"

// Session is a refresh-token session. Access tokens are short-lived JWTs;
// the session lets a client obtain new ones until it expires or is revoked.
type Session struct {
	ID        string     // refresh token value (64-character hex string)
	UserID    uint       // owner
	UserAgent string     // client User-Agent at login
	IPAddress string     // client IP at login
	CreatedAt time.Time  // issue time
	ExpiresAt time.Time  // hard expiry
	RevokedAt *time.Time // nil while active
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked reports whether the session was revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid reports whether the session can still be used.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
