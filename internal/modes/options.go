package modes

import (
	"fmt"

	"aeskit/internal/aes"
)

// Options carries the per-call parameters of a mode. The zero value is valid:
// all-zero IV and counter, padding on for ECB and CBC, sequential, no trace.
//
// The all-zero defaults make results reproducible for test vectors and are
// not safe for real traffic.
type Options struct {
	// IV seeds CBC, CFB and OFB. Nil selects an all-zero block.
	IV []byte
	// Counter is the first CTR counter block. Nil selects an all-zero block.
	Counter []byte
	// NoPadding disables zero-count padding in ECB and CBC. Stream modes never pad.
	NoPadding bool
	// Parallel spreads independent blocks over goroutines where the mode allows it.
	Parallel bool
	// Trace, when set, receives one step per block. Tracing runs sequentially.
	Trace *Trace
}

type params struct {
	iv       [BlockSize]byte
	counter  [BlockSize]byte
	pad      bool
	parallel bool
	trace    *Trace
}

func (o Options) resolve(m Mode) (params, error) {
	p := params{
		pad:      m.Padded() && !o.NoPadding,
		parallel: o.Parallel && o.Trace == nil,
		trace:    o.Trace,
	}
	if m.UsesIV() && o.IV != nil {
		if len(o.IV) != BlockSize {
			return p, fmt.Errorf("%w: IV is %d bytes", aes.ErrInvalidBlockSize, len(o.IV))
		}
		copy(p.iv[:], o.IV)
	}
	if m.UsesCounter() && o.Counter != nil {
		if len(o.Counter) != BlockSize {
			return p, fmt.Errorf("%w: counter is %d bytes", aes.ErrInvalidBlockSize, len(o.Counter))
		}
		copy(p.counter[:], o.Counter)
	}
	return p, nil
}
