package params

import "github.com/ironsheep/image-tint-mcp/internal/colormatrix"

// DirtyFlags records which pipeline stages must run on the next pass.
type DirtyFlags struct {
	Crop      bool `json:"crop"`
	Tint      bool `json:"tint"`
	Transform bool `json:"transform"`
}

// Any reports whether at least one stage is flagged.
func (d DirtyFlags) Any() bool { return d.Crop || d.Tint || d.Transform }

// Or returns the union of d and o.
func (d DirtyFlags) Or(o DirtyFlags) DirtyFlags {
	return DirtyFlags{
		Crop:      d.Crop || o.Crop,
		Tint:      d.Tint || o.Tint,
		Transform: d.Transform || o.Transform,
	}
}

// Diff returns the stages whose inputs differ between old and next.
func Diff(old, next Parameters) DirtyFlags {
	return DirtyFlags{
		Crop:      old.Crop != next.Crop || old.Anchor != next.Anchor,
		Tint:      old.Greyscale != next.Greyscale || !colormatrix.Equal(old.Matrix, next.Matrix),
		Transform: old.Flip != next.Flip || old.Rotate != next.Rotate,
	}
}

// Applicable returns the stages that are non-trivial for p. A freshly loaded
// image has had no stage applied, so all of these must run once.
func Applicable(p Parameters) DirtyFlags {
	return DirtyFlags{
		Crop:      p.Crop.Enabled(),
		Tint:      p.NeedsTint(),
		Transform: p.NeedsTransform(),
	}
}

// Tracker remembers the last configured parameters and the stages that have
// been flagged since the last completed pipeline pass. The zero value is not
// usable; create one with NewTracker.
type Tracker struct {
	current Parameters
	pending DirtyFlags
}

// NewTracker returns a tracker starting from Default parameters.
func NewTracker() *Tracker {
	return &Tracker{current: Default()}
}

// Current returns the most recently configured parameters.
func (t *Tracker) Current() Parameters { return t.current }

// Pending returns the flags accumulated since the last Clear.
func (t *Tracker) Pending() DirtyFlags { return t.pending }

// Update records a configuration read and returns the pending flags.
func (t *Tracker) Update(next Parameters) DirtyFlags {
	t.pending = t.pending.Or(Diff(t.current, next))
	t.current = next
	return t.pending
}

// Reloaded records that the source image was (re)loaded and returns the
// pending flags.
func (t *Tracker) Reloaded() DirtyFlags {
	t.pending = t.pending.Or(Applicable(t.current))
	return t.pending
}

// Clear resets all flags after a completed pipeline pass.
func (t *Tracker) Clear() { t.pending = DirtyFlags{} }
