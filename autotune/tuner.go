package autotune

import (
	"fmt"
	"sync"

	"k8s.io/klog/v2"

	"github.com/drisspg/cutegen/ir"
)

// Candidate is one competing kernel implementation the tuner can rank.
// Template callers satisfy this interface.
type Candidate interface {
	Benchmark(out *ir.Buffer, args ...any) (float64, error)
	InfoDict() map[string]any
}

// Result records the winner of one tuning run
type Result struct {
	Candidate Candidate
	TimeMS    float64
}

// Tuner benchmarks competing candidates and picks the fastest. Winners
// are cached by caller-supplied key (typically a shape/dtype signature)
// so repeated compilations of the same problem skip re-benchmarking.
type Tuner struct {
	mu    sync.RWMutex
	cache map[string]Result
}

// NewTuner creates a tuner with an empty winner cache
func NewTuner() *Tuner {
	return &Tuner{
		cache: make(map[string]Result),
	}
}

// PickBest benchmarks every candidate and returns the fastest. A failing
// candidate is logged and excluded; the run only errors when no candidate
// survives. Results are cached under key.
func (t *Tuner) PickBest(key string, out *ir.Buffer, candidates []Candidate, args ...any) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("no candidates to tune")
	}

	t.mu.RLock()
	if cached, ok := t.cache[key]; ok {
		t.mu.RUnlock()
		return cached, nil
	}
	t.mu.RUnlock()

	var best Result
	found := false
	for _, cand := range candidates {
		timeMS, err := cand.Benchmark(out, args...)
		if err != nil {
			klog.V(1).InfoS("excluding failed candidate", "candidate",
				cand.InfoDict()["name"], "err", err)
			continue
		}
		if !found || timeMS < best.TimeMS {
			best = Result{Candidate: cand, TimeMS: timeMS}
			found = true
		}
	}
	if !found {
		return Result{}, fmt.Errorf("all %d candidates failed to benchmark", len(candidates))
	}

	t.mu.Lock()
	t.cache[key] = best
	t.mu.Unlock()

	return best, nil
}

// CachedResult returns a previously tuned winner, if any
func (t *Tuner) CachedResult(key string) (Result, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	res, ok := t.cache[key]
	return res, ok
}
