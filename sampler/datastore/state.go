package datastore

// State is the datastore connection state as seen by the connection manager.
type State int32

const (
	Disconnected State = iota
	Connected
	Connecting
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Connecting:
		return "connecting"
	case Disconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

// StateReader is the read-only view of a connection that samplers depend on.
// Implementations must not block.
type StateReader interface {
	State() State
	Name() string
}
