package protocol

import (
	"encoding/json"
	"fmt"
)

// PlayerID identifies a player in the room. IDs are assigned sequentially
// from zero and never reused.
type PlayerID int

// Referee selects the unfiltered view, with no hand hidden.
const Referee PlayerID = -1

// Cmd represents a command. Wire names mirror the client-facing socket
// events.
type Cmd int

const (
	Null Cmd = iota
	Connected
	Ready
	Unready
	ReadyChanged
	Start
	Discard
	Hint
	Play
	Update
	End
	Rejected
)

var CmdNames = map[Cmd]string{
	Null:         "null",
	Connected:    "connected",
	Ready:        "ready",
	Unready:      "unready",
	ReadyChanged: "ready_changed",
	Start:        "start",
	Discard:      "discard",
	Hint:         "hint",
	Play:         "play",
	Update:       "update",
	End:          "end",
	Rejected:     "rejected",
}

var NameToCmd = map[string]Cmd{}

func init() {
	for cmd, name := range CmdNames {
		NameToCmd[name] = cmd
	}
}

func (c Cmd) String() string {
	return CmdNames[c]
}

// MarshalJSON encodes a Cmd as its wire name.
func (c Cmd) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a Cmd from its wire name.
func (c *Cmd) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	cmd, ok := NameToCmd[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	*c = cmd
	return nil
}
