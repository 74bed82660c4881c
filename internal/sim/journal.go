package sim

// defaultJournalCapacity bounds how many frames of keyframes and inputs the
// room retains for resimulation. Late input older than the window forces a
// full resync instead of a rollback.
const defaultJournalCapacity = 128

// Journal retains recent keyframes and the external inputs that produced
// them, keyed by frame number.
type Journal struct {
	capacity  int
	keyframes map[uint64][]byte
	inputs    map[uint64]FrameInput
	newest    uint64
}

func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = defaultJournalCapacity
	}
	return &Journal{
		capacity:  capacity,
		keyframes: make(map[uint64][]byte),
		inputs:    make(map[uint64]FrameInput),
	}
}

// RecordKeyframe stores the encoded checkpoint for a frame and prunes
// entries that fell out of the retention window.
func (j *Journal) RecordKeyframe(frame uint64, data []byte) {
	j.keyframes[frame] = data
	if frame > j.newest {
		j.newest = frame
	}
	j.prune()
}

// RecordInputs stores the external events consumed by a frame.
func (j *Journal) RecordInputs(frame uint64, frameInput FrameInput) {
	j.inputs[frame] = frameInput
}

// Keyframe returns the encoded checkpoint for a frame if still retained.
func (j *Journal) Keyframe(frame uint64) ([]byte, bool) {
	data, ok := j.keyframes[frame]
	return data, ok
}

// Inputs returns the recorded external events for a frame. Frames inside
// the window with no recorded events replay as empty input.
func (j *Journal) Inputs(frame uint64) (FrameInput, bool) {
	if frameInput, ok := j.inputs[frame]; ok {
		return frameInput, true
	}
	if frame <= j.newest {
		return FrameInput{}, true
	}
	return FrameInput{}, false
}

// Window reports the retained frame span.
func (j *Journal) Window() (oldest, newest uint64, frames int) {
	first := true
	for frame := range j.keyframes {
		if first || frame < oldest {
			oldest = frame
			first = false
		}
	}
	return oldest, j.newest, len(j.keyframes)
}

func (j *Journal) prune() {
	if j.newest < uint64(j.capacity) {
		return
	}
	cutoff := j.newest - uint64(j.capacity)
	for frame := range j.keyframes {
		if frame < cutoff {
			delete(j.keyframes, frame)
		}
	}
	for frame := range j.inputs {
		if frame < cutoff {
			delete(j.inputs, frame)
		}
	}
}
