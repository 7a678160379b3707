package primitives

import (
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/weaveiot/spake2p/errs"
)

// EntropySource is a polling callback registered with a DRBG: each call
// returns a slice of fresh entropy bytes (spec §4.5's entropy_source
// function pointer, re-architected as a Go func value per §9's design
// note on the global DRBG and entropy sources).
type EntropySource func() ([]byte, error)

type registeredSource struct {
	poll      EntropySource
	threshold int
	polled    int
}

// DRBG is a process-wide, lazily-initialized random bit generator modeled
// on NIST SP 800-90A's registration shape: callers register polling
// entropy sources with a minimum-bytes threshold, and GetBytes refuses to
// release output until at least one source has cleared its threshold
// (spec §4.5, §9). Concurrent draws are serialized with a mutex, as
// spec §5 requires of any shared DRBG singleton.
//
// This module does not implement its own entropy source (spec §1's
// Non-goals exclude "providing a random source"); once a source has
// cleared its threshold, GetBytes draws from crypto/rand, which is itself
// backed by the host operating system's CSPRNG.
type DRBG struct {
	mu        sync.Mutex
	sources   []registeredSource
	satisfied bool
}

var defaultDRBG = &DRBG{}

// DefaultDRBG returns the process-wide DRBG singleton the arithmetic
// façade's FEGenerate draws on.
func DefaultDRBG() *DRBG { return defaultDRBG }

// AddEntropySource registers a polling source. threshold is the minimum
// number of bytes the source must have contributed, across one or more
// polls, before GetBytes is willing to release output.
func (d *DRBG) AddEntropySource(source EntropySource, threshold int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sources = append(d.sources, registeredSource{poll: source, threshold: threshold})
}

// Poll draws from every registered source once, accumulating their byte
// counts toward each source's threshold. A caller with no registered
// sources (the common case, since the host typically relies on the OS
// CSPRNG directly) may skip Poll entirely — GetBytes treats an empty
// source list as already satisfied.
func (d *DRBG) Poll() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.sources) == 0 {
		d.satisfied = true
		return nil
	}
	for i := range d.sources {
		s := &d.sources[i]
		b, err := s.poll()
		if err != nil {
			return errs.New("Poll", errs.InternalError, err)
		}
		s.polled += len(b)
		if s.polled >= s.threshold {
			d.satisfied = true
		}
	}
	return nil
}

// GetBytes draws n cryptographically secure random bytes. It fails with
// OutOfEntropy if entropy sources were registered but none has yet
// cleared its threshold.
func (d *DRBG) GetBytes(n int) ([]byte, error) {
	d.mu.Lock()
	hasSources := len(d.sources) > 0
	satisfied := d.satisfied
	d.mu.Unlock()

	if hasSources && !satisfied {
		return nil, errs.New("GetBytes", errs.OutOfEntropy, fmt.Errorf("no registered entropy source has reached its threshold"))
	}

	out := make([]byte, n)
	if _, err := rand.Read(out); err != nil {
		return nil, errs.New("GetBytes", errs.InternalError, err)
	}
	return out, nil
}
