package steps

// State is the visual state of a step element.
type State string

const (
	StateIdle      State = "idle"
	StateActive    State = "active"
	StateCompleted State = "completed"
	StateError     State = "error"
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == "" {
		return string(StateIdle)
	}
	return string(s)
}
