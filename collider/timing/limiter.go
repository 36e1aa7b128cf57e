package timing

import "time"

// RedrawHz is the terminal editor's target screen-refresh rate. The audio
// thread's own timing is driven entirely by the device callback's pull
// cadence and never uses this package; this is only the editor's redraw
// cadence.
const RedrawHz = 60

// FrameDuration returns the target duration of a single redraw frame.
func FrameDuration() time.Duration {
	return time.Second / RedrawHz
}
