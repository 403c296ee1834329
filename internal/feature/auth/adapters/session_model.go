package adapters

import (
	"time"

	"auction_backend/internal/feature/auth/domain/entity"
)

// SessionModel is the refresh_sessions row. Its fields mirror entity.Session
// one to one, so the two convert directly.
type SessionModel struct {
	ID        string     `gorm:"primaryKey;size:64"`
	UserID    uint       `gorm:"index:idx_refresh_sessions_user_created,priority:1;not null"`
	UserAgent string     `gorm:"size:512"`
	IPAddress string     `gorm:"size:45"` // IPv6 max length
	CreatedAt time.Time  `gorm:"index:idx_refresh_sessions_user_created,priority:2;not null"`
	ExpiresAt time.Time  `gorm:"index;not null"`
	RevokedAt *time.Time `gorm:"index"`
}

func (SessionModel) TableName() string {
	return "refresh_sessions"
}

func (m *SessionModel) toEntity() *entity.Session {
	s := entity.Session(*m)
	return &s
}

func sessionModelFrom(s *entity.Session) *SessionModel {
	m := SessionModel(*s)
	return &m
}
