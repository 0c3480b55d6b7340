// Package viewport maps between device and logical canvas coordinates and
// animates zoom/pan transitions.
package viewport

import (
	"math"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
)

const (
	// MinZoom and MaxZoom clamp the scale to avoid degenerate transforms.
	MinZoom = 0.1
	MaxZoom = 10.0

	// lerpFactor is the fraction of the remaining distance covered per tick.
	lerpFactor = 0.2
	// snapEps is the distance (in zoom units / logical units) below which an
	// animation snaps to its target and halts.
	snapEps = 0.001
)

// Viewport holds the zoom/pan state of one editing surface and maps
// device = logical*zoom + pan. It is created once per surface and mutated by
// pan/zoom gestures only, never by path edits.
type Viewport struct {
	Zoom float64
	Pan  geom.Vec

	targetZoom float64
	targetPan  geom.Vec
	animating  bool

	pinchActive    bool
	pinchStartDist float64
	pinchStartZoom float64
}

// New returns a viewport at zoom 1 with no pan.
func New() *Viewport {
	return &Viewport{Zoom: 1, targetZoom: 1}
}

// ToLogical converts a device-space point to logical canvas coordinates.
func (v *Viewport) ToLogical(device geom.Vec) geom.Vec {
	return geom.Vec{
		X: (device.X - v.Pan.X) / v.Zoom,
		Y: (device.Y - v.Pan.Y) / v.Zoom,
	}
}

// ToDevice converts a logical canvas point to device coordinates.
func (v *Viewport) ToDevice(logical geom.Vec) geom.Vec {
	return geom.Vec{
		X: logical.X*v.Zoom + v.Pan.X,
		Y: logical.Y*v.Zoom + v.Pan.Y,
	}
}

// Set jumps directly to the given zoom and pan, cancelling any animation.
func (v *Viewport) Set(zoom float64, pan geom.Vec) {
	v.Zoom = clampZoom(zoom)
	v.Pan = pan
	v.targetZoom = v.Zoom
	v.targetPan = v.Pan
	v.animating = false
}

// PanBy shifts the pan by a device-space delta, cancelling any animation.
func (v *Viewport) PanBy(d geom.Dir) {
	v.Set(v.Zoom, v.Pan.Add(d))
}

// ZoomAt sets the zoom so that the logical point under the device-space
// anchor stays under that same device pixel. Applied immediately.
func (v *Viewport) ZoomAt(zoom float64, anchor geom.Vec) {
	zoom = clampZoom(zoom)
	logical := v.ToLogical(anchor)
	// Solve anchor = logical*zoom + pan for the new pan.
	pan := geom.Vec{
		X: anchor.X - logical.X*zoom,
		Y: anchor.Y - logical.Y*zoom,
	}
	v.Set(zoom, pan)
}

// ZoomBy scales the current zoom by factor, anchored at the given device
// point. Wheel zoom calls this with small increments.
func (v *Viewport) ZoomBy(factor float64, anchor geom.Vec) {
	v.ZoomAt(v.Zoom*factor, anchor)
}

// StartPinch begins a two-pointer pinch gesture at the given device points.
func (v *Viewport) StartPinch(p1, p2 geom.Vec) {
	v.pinchActive = true
	v.pinchStartDist = p1.DistanceTo(p2)
	v.pinchStartZoom = v.Zoom
}

// MovePinch updates the zoom from the ratio of the current to the initial
// inter-pointer distance, anchored at the pinch midpoint.
func (v *Viewport) MovePinch(p1, p2 geom.Vec) {
	if !v.pinchActive || v.pinchStartDist == 0 {
		return
	}
	ratio := p1.DistanceTo(p2) / v.pinchStartDist
	v.ZoomAt(v.pinchStartZoom*ratio, p1.Mid(p2))
}

// EndPinch finishes the pinch gesture.
func (v *Viewport) EndPinch() {
	v.pinchActive = false
}

// Pinching reports whether a pinch gesture is in progress.
func (v *Viewport) Pinching() bool {
	return v.pinchActive
}

// AnimateTo requests an animated transition toward the given zoom and pan.
// Any in-flight animation is preempted; the transition restarts from the
// current (possibly mid-interpolation) state.
func (v *Viewport) AnimateTo(zoom float64, pan geom.Vec) {
	v.targetZoom = clampZoom(zoom)
	v.targetPan = pan
	v.animating = true
}

// FitContent requests an animated transition framing the given logical
// bounds inside a device surface of the given size, with a margin in device
// pixels. Bounds with no extent in either axis reset to the identity view; a
// degenerate horizontal or vertical span is framed along its non-zero axis.
func (v *Viewport) FitContent(bounds geom.Rect, surfaceW, surfaceH, margin float64) {
	if (bounds.Width <= 0 && bounds.Height <= 0) || surfaceW <= 0 || surfaceH <= 0 {
		v.AnimateTo(1, geom.Vec{})
		return
	}
	// A zero extent divides to +Inf and drops out of the min.
	zoom := math.Min(
		(surfaceW-2*margin)/bounds.Width,
		(surfaceH-2*margin)/bounds.Height,
	)
	zoom = clampZoom(zoom)
	center := bounds.Center()
	pan := geom.Vec{
		X: surfaceW/2 - center.X*zoom,
		Y: surfaceH/2 - center.Y*zoom,
	}
	v.AnimateTo(zoom, pan)
}

// Tick advances any in-flight animation by one frame, interpolating toward
// the target and snapping once within epsilon. It returns true while the
// animation still needs further ticks. The host render loop drives this.
func (v *Viewport) Tick() bool {
	if !v.animating {
		return false
	}

	v.Zoom += (v.targetZoom - v.Zoom) * lerpFactor
	v.Pan = v.Pan.Lerp(v.targetPan, lerpFactor)

	if math.Abs(v.targetZoom-v.Zoom) < snapEps &&
		v.Pan.DistanceTo(v.targetPan) < snapEps {
		v.Zoom = v.targetZoom
		v.Pan = v.targetPan
		v.animating = false
	}
	return v.animating
}

// Animating reports whether an animated transition is in flight.
func (v *Viewport) Animating() bool {
	return v.animating
}

func clampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
