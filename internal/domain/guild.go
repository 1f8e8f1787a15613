package domain

import "time"

// Guild groups players under a leader. Creation costs REALM which is
// moved into the guild treasury.
type Guild struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	LeaderID    int64     `db:"leader_id" json:"leader_id"`
	MemberCount int       `db:"member_count" json:"member_count"`
	MaxMembers  int       `db:"max_members" json:"max_members"`
	Level       int       `db:"level" json:"level"`
	Experience  int       `db:"experience" json:"experience"`
	MinLevel    int       `db:"min_level" json:"min_level"`
	MinNFTs     int       `db:"min_nfts" json:"min_nfts"`
	Treasury    float64   `db:"treasury" json:"treasury"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
