package sim

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/modu-apps/cell-eater/internal/store"
)

// Checkpoint is everything replay needs: the entity state plus the PRNG
// words. Restoring a checkpoint and replaying the same FrameInputs yields
// bit-identical state.
type Checkpoint struct {
	Store store.Checkpoint `msgpack:"store" json:"store"`
	RngHi uint32           `msgpack:"rngHi" json:"rngHi"`
	RngLo uint32           `msgpack:"rngLo" json:"rngLo"`
}

// Checkpoint captures the current frame's full state.
func (w *World) Checkpoint() Checkpoint {
	hi, lo := w.rng.State()
	return Checkpoint{Store: w.store.Checkpoint(), RngHi: hi, RngLo: lo}
}

// RestoreCheckpoint replaces the world state with a checkpoint.
func (w *World) RestoreCheckpoint(cp Checkpoint) {
	w.store.Restore(cp.Store)
	w.rng.Restore(cp.RngHi, cp.RngLo)
	w.pending = FrameInput{}
}

// encodeCheckpoint serializes the current state. Checkpoint slices are
// sorted and owners are canonical strings, so equal state encodes to equal
// bytes on every host.
func (w *World) encodeCheckpoint() []byte {
	data, err := msgpack.Marshal(w.Checkpoint())
	if err != nil {
		// Checkpoint contains only fixed-layout value types; an encode
		// failure is a programming error.
		panic(fmt.Sprintf("sim: encode checkpoint: %v", err))
	}
	return data
}

func decodeCheckpoint(data []byte) (Checkpoint, error) {
	var cp Checkpoint
	if err := msgpack.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, fmt.Errorf("sim: decode checkpoint: %w", err)
	}
	return cp, nil
}

// StateHash returns the hex digest replicas exchange to detect divergence.
func (w *World) StateHash() string {
	sum := sha256.Sum256(w.encodeCheckpoint())
	return hex.EncodeToString(sum[:])
}

// RollbackTo restores the retained keyframe for the given frame.
func (w *World) RollbackTo(frame uint64) error {
	data, ok := w.journal.Keyframe(frame)
	if !ok {
		return fmt.Errorf("sim: no keyframe retained for frame %d", frame)
	}
	cp, err := decodeCheckpoint(data)
	if err != nil {
		return err
	}
	w.RestoreCheckpoint(cp)
	return nil
}

// Replay advances from the current frame to the target frame using the
// journal's recorded inputs, re-recording keyframes along the way.
func (w *World) Replay(toFrame uint64) error {
	for w.store.Frame() < toFrame {
		next := w.store.Frame() + 1
		frameInput, ok := w.journal.Inputs(next)
		if !ok {
			return fmt.Errorf("sim: no recorded inputs for frame %d", next)
		}
		w.step(frameInput)
		w.journal.RecordKeyframe(w.store.Frame(), w.encodeCheckpoint())
	}
	return nil
}
