package core

import (
	"time"

	"github.com/dkeye/Meet/internal/domain"
)

// MemberDTO is a read-only view for APIs (no transport fields).
type MemberDTO struct {
	ID          SessionID `json:"id"`
	DisplayName string    `json:"displayName"`
	Video       bool      `json:"video"`
	Audio       bool      `json:"audio"`
	JoinedAt    time.Time `json:"joinedAt"`
}

func NewMemberDTO(m *domain.Member) MemberDTO {
	return MemberDTO{
		ID:          SessionID(m.ID),
		DisplayName: m.DisplayName,
		Video:       m.Media.Video,
		Audio:       m.Media.Audio,
		JoinedAt:    m.JoinedAt,
	}
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"member_count"`
}

type RoomSnapshot struct {
	Name    domain.RoomName `json:"name"`
	Members []MemberDTO     `json:"members"`
}
