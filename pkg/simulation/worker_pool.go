package simulation

import (
	"runtime"
	"sync"

	"gargantua/pkg/core"
	"gargantua/pkg/integrator"
)

// stepParallel steps the population across workers in contiguous chunks.
// Per-ray state is fully independent and the black hole is read-only during
// a frame, so no synchronization beyond the final wait is needed. Results
// are identical to the sequential path: each ray sees the same operations in
// the same order regardless of which worker runs it.
func stepParallel(rays []*core.Ray, bh *core.BlackHole, bounds integrator.Bounds, integ integrator.Integrator, dt float64, workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(rays) {
		workers = len(rays)
	}
	if workers <= 1 {
		for _, ray := range rays {
			integrator.Step(ray, bh, bounds, integ, dt)
		}
		return
	}

	chunk := (len(rays) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(rays); start += chunk {
		end := start + chunk
		if end > len(rays) {
			end = len(rays)
		}

		wg.Add(1)
		go func(span []*core.Ray) {
			defer wg.Done()
			for _, ray := range span {
				integrator.Step(ray, bh, bounds, integ, dt)
			}
		}(rays[start:end])
	}
	wg.Wait()
}
