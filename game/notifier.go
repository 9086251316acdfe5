package game

import "github.com/minaorangina/hanabi/protocol"

// Notifier is the engine's outbound collaborator. The engine calls it
// synchronously while holding its own lock, so implementations must not call
// back into the engine and should hand messages off quickly.
//
// The three delivery shapes are deliberate: per-player views, a broadcast to
// everyone, and a broadcast to everyone except the sender.
type Notifier interface {
	// OnStart delivers each player their personalised opening view.
	OnStart(views map[protocol.PlayerID]protocol.View)
	// OnReadyChanged broadcasts the waiting-room roster to all players.
	OnReadyChanged(roster protocol.View)
	// OnUpdate delivers each player their personalised view after a move.
	OnUpdate(views map[protocol.PlayerID]protocol.View)
	// OnHint delivers a hint to every player except its sender.
	OnHint(from protocol.PlayerID, hint protocol.HintInfo)
	// OnEnd delivers the terminal views, hands revealed, once per player.
	OnEnd(views map[protocol.PlayerID]protocol.View)
}
