package domain

import "time"

// MediaState is the last-known camera/microphone state a member reported.
type MediaState struct {
	Video bool `json:"video"`
	Audio bool `json:"audio"`
}

// Member represents user's participation meta for a room.
// No transport or lifecycle logic here.
type Member struct {
	ID          string
	DisplayName string
	Media       MediaState
	JoinedAt    time.Time
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
// Media starts enabled, matching what a browser publishes right after join.
func NewMember(id, displayName string, now time.Time) *Member {
	if displayName == "" {
		displayName = DefaultDisplayName(id)
	}
	return &Member{
		ID:          id,
		DisplayName: displayName,
		Media:       MediaState{Video: true, Audio: true},
		JoinedAt:    now,
	}
}
