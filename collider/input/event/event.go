// Package event defines the trigger semantics a bound action can fire on.
package event

// Type represents the type of input event an action handler is bound to.
type Type int

const (
	Press   Type = iota // key/button pressed down (debounced)
	Release             // key/button released (debounced)
	Hold                // continuous while held (not debounced)
)
