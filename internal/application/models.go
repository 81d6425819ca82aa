package application

import "time"

// CreateBlockParams carries a block creation request. Actor is the person id
// claimed by the client for history attribution; when empty, the block's
// owner is recorded as the actor.
type CreateBlockParams struct {
	Actor    string
	PersonID string
	Start    string
	End      string
}

// BlockPatch holds the optional fields of a partial block update. Nil fields
// keep the stored value.
type BlockPatch struct {
	PersonID *string
	Start    *string
	End      *string
}

// UpdateBlockParams carries a block update request.
type UpdateBlockParams struct {
	Actor   string
	BlockID string
	Patch   BlockPatch
}

// DeleteBlockParams carries a block deletion request.
type DeleteBlockParams struct {
	Actor   string
	BlockID string
}

// HistoryEntry is a mutation log record rendered for the wire, newest first.
type HistoryEntry struct {
	ID             string `json:"id"`
	Timestamp      string `json:"timestamp"`
	ActorPersonID  string `json:"actorPersonId"`
	TargetPersonID string `json:"targetPersonId"`
	Action         string `json:"action"`
	Details        string `json:"details"`
}

// Session is an issued authentication session.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
