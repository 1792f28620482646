// Package viz renders a running simulation in the terminal.
//
// [Model] is a Bubble Tea program that ticks a [sim.Driver] every frame,
// draws the bodies and their orbit trails on a braille [Canvas], and shows
// the simulated date, speed and conservation diagnostics beside it. A pair
// panel compares the selected body with the heaviest other body.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	+/-   - Double/halve speed
//	R     - Reverse time
//	B     - Reset to barycenter
//	F     - Fit view to bodies
//	C     - Clear orbit trails
//	Tab   - Select the body shown in the pair panel
//	Q     - Quit
package viz
