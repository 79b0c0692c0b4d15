// Package page models each browsable page as an immutable controller value.
// A page starts Loading, becomes Ready once its data is loaded, or ends
// Unavailable when loading fails. Every interaction is a pure transition that
// returns a new value, and View projects the current value for rendering.
package page

// Status is the lifecycle state of a page.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// Display messages shared by the pages.
const (
	MessageLoading     = "Loading..."
	MessageUnavailable = "Data unavailable."
	MessageNoMatches   = "No matches found."
)
