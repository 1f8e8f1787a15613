package domain

import "time"

// BattleStatus - статус битвы
type BattleStatus string

const (
	BattleStatusWaiting   BattleStatus = "waiting"
	BattleStatusActive    BattleStatus = "active"
	BattleStatusCompleted BattleStatus = "completed"
)

// Battle is a two-party wager match. The wager is debited from each
// player at create/join time; the winner takes the pot minus the
// platform cut when the resolver fires.
type Battle struct {
	ID        int64        `db:"id" json:"id"`
	Player1ID int64        `db:"player1_id" json:"player1_id"`
	Player2ID *int64       `db:"player2_id" json:"player2_id,omitempty"`
	Wager     float64      `db:"wager" json:"wager"`
	Status    BattleStatus `db:"status" json:"status"`
	WinnerID  *int64       `db:"winner_id" json:"winner_id,omitempty"`
	// ResolveAt is persisted when player2 joins so an in-flight battle
	// survives a process restart.
	ResolveAt  *time.Time `db:"resolve_at" json:"resolve_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ResolvedAt *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
}
