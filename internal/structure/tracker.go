package structure

// Tracker runs a detector list over a stream of lines and maintains
// the running heading Context. One Tracker serves one chunking run.
type Tracker struct {
	detectors []Detector
	ctx       Context
}

func NewTracker(detectors []Detector) *Tracker {
	return &Tracker{detectors: detectors}
}

// Process feeds one line through every detector in order, applies each
// match onto the running context (later detectors win on collision),
// and returns whether any detector fired along with a value snapshot
// of the resulting context. A fired detector counts as a change even
// when the detected value equals the previous one; callers compare
// snapshots to decide whether a real transition occurred.
func (t *Tracker) Process(line string) (bool, Context) {
	changed := false
	for _, d := range t.detectors {
		upd := d.Detect(line)
		if upd == nil {
			continue
		}
		changed = true
		if upd.Unit != nil {
			t.ctx.Unit = *upd.Unit
		}
		if upd.Section != nil {
			t.ctx.Section = *upd.Section
		}
		if upd.SectionTitle != nil {
			t.ctx.SectionTitle = *upd.SectionTitle
		}
	}
	return changed, t.ctx
}

// Current returns the active context without processing a line.
func (t *Tracker) Current() Context {
	return t.ctx
}
