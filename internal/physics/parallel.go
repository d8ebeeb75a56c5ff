package physics

import (
	"sync"

	"github.com/san-kum/episim/internal/agent"
)

// repelParallel gives worker w the rows i ≡ w (mod workers). Rows are
// strided because the triangular j>i loop makes early rows the heaviest.
func (e *Engine) repelParallel(agents []*agent.Agent) Stats {
	n := len(agents)
	workers := e.workers
	if workers > n {
		workers = n
	}

	pos := make([]agentPos, n)
	cutoff := make([]float64, n)
	for i, a := range agents {
		p := a.Position()
		pos[i] = agentPos{p.X, p.Y}
		cutoff[i] = CutoffFactor * a.Radius()
	}

	localAx := make([][]float64, workers)
	localAy := make([][]float64, workers)
	stats := make([]Stats, workers)
	for w := 0; w < workers; w++ {
		localAx[w] = make([]float64, n)
		localAy[w] = make([]float64, n)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			lax := localAx[worker]
			lay := localAy[worker]
			st := &stats[worker]

			for i := worker; i < n; i += workers {
				for j := i + 1; j < n; j++ {
					st.Pairs++
					fx, fy, ok := pairForce(pos[i], pos[j], cutoff[i])
					if !ok {
						continue
					}
					st.Repelled++
					lax[i] += fx
					lay[i] += fy
					lax[j] -= fx
					lay[j] -= fy
				}
			}
		}(w)
	}

	wg.Wait()

	var total Stats
	for w := 0; w < workers; w++ {
		total = total.add(stats[w])
	}
	for i, a := range agents {
		var f agent.Vec2
		for w := 0; w < workers; w++ {
			f.X += localAx[w][i]
			f.Y += localAy[w][i]
		}
		a.AddAcceleration(f)
	}
	return total
}
