package game

// RoomState represents the main phases of the room. Transitions are linear:
// a room never returns to Waiting, and an ended room only thaws on process
// restart.
type RoomState int

const (
	Waiting RoomState = iota
	InProgress
	End
)

var roomStateNames = []string{"waiting", "in_progress", "end"}

func (rs RoomState) String() string {
	if rs < 0 || int(rs) >= len(roomStateNames) {
		return ""
	}
	return roomStateNames[rs]
}

// EndReason records why a game ended.
type EndReason int

const (
	NotEnded EndReason = iota
	AllSuitsComplete
	FuseBurnt
	DeckExhausted
)

var endReasonNames = []string{"", "all fireworks complete", "fuse burnt", "deck exhausted"}

func (er EndReason) String() string {
	if er < 0 || int(er) >= len(endReasonNames) {
		return ""
	}
	return endReasonNames[er]
}
