package solver

import (
	"context"
	"math"
	"sync"
)

// incumbent is the best complete schedule found so far.
type incumbent struct {
	starts    []int
	machines  []int
	makespan  int
	tardiness []int
	value     float64
}

// sharedBest guards the incumbent shared by all search workers.
type sharedBest struct {
	mu    sync.Mutex
	value float64
	inc   *incumbent
}

func newSharedBest() *sharedBest {
	return &sharedBest{value: math.Inf(1)}
}

func (b *sharedBest) bound() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

func (b *sharedBest) update(cand *incumbent) {
	b.mu.Lock()
	if cand.value < b.value {
		b.value = cand.value
		b.inc = cand
	}
	b.mu.Unlock()
}

// placement schedules one operation on one machine at a concrete start.
type placement struct {
	job     int
	op      int
	machine int
	start   int
}

type undo struct {
	p            placement
	prevReady    int
	prevComplete int
	prevFree     int
	prevMaxEnd   int
	prevFam      string
}

// searchState is the mutable DFS state. Workers never share a state; the
// model itself is read-only.
type searchState struct {
	m   *Model
	obj Objective

	nextOp   []int
	jobReady []int
	complete []int
	machFree []int
	machFam  []string
	starts   []int
	machines []int

	scheduled int
	maxEnd    int
}

func newSearchState(m *Model, obj Objective) *searchState {
	s := &searchState{
		m:        m,
		obj:      obj,
		nextOp:   make([]int, len(m.JobOps)),
		jobReady: make([]int, len(m.JobOps)),
		complete: make([]int, len(m.JobOps)),
		machFree: make([]int, len(m.MachineIDs)),
		machFam:  make([]string, len(m.MachineIDs)),
		starts:   make([]int, len(m.Ops)),
		machines: make([]int, len(m.Ops)),
	}
	for i := range s.starts {
		s.starts[i] = -1
		s.machines[i] = -1
	}
	return s
}

func (s *searchState) clone() *searchState {
	c := *s
	c.nextOp = append([]int(nil), s.nextOp...)
	c.jobReady = append([]int(nil), s.jobReady...)
	c.complete = append([]int(nil), s.complete...)
	c.machFree = append([]int(nil), s.machFree...)
	c.machFam = append([]string(nil), s.machFam...)
	c.starts = append([]int(nil), s.starts...)
	c.machines = append([]int(nil), s.machines...)
	return &c
}

// earliestStart returns the earliest feasible start of job j's next operation
// on machine mi, honoring the job gap, the machine cursor, family setup
// separation and the machine calendar.
func (s *searchState) earliestStart(j, mi int) (int, bool) {
	iv := &s.m.Ops[s.m.JobOps[j][s.nextOp[j]]]
	t := s.jobReady[j]
	free := s.machFree[mi]
	if s.m.Setup > 0 && s.machFam[mi] != "" && s.machFam[mi] != iv.Family {
		free += s.m.Setup
	}
	if t < free {
		t = free
	}
	return s.m.Calendars[mi].Next(t, iv.Duration)
}

func (s *searchState) place(p placement) undo {
	iv := &s.m.Ops[p.op]
	end := p.start + iv.Duration
	u := undo{
		p:            p,
		prevReady:    s.jobReady[p.job],
		prevComplete: s.complete[p.job],
		prevFree:     s.machFree[p.machine],
		prevMaxEnd:   s.maxEnd,
		prevFam:      s.machFam[p.machine],
	}
	s.starts[p.op] = p.start
	s.machines[p.op] = p.machine
	s.nextOp[p.job]++
	s.jobReady[p.job] = end + s.m.Gap
	if s.nextOp[p.job] == len(s.m.JobOps[p.job]) {
		s.complete[p.job] = end
	}
	s.machFree[p.machine] = end
	s.machFam[p.machine] = iv.Family
	if end > s.maxEnd {
		s.maxEnd = end
	}
	s.scheduled++
	return u
}

func (s *searchState) unplace(u undo) {
	s.starts[u.p.op] = -1
	s.machines[u.p.op] = -1
	s.nextOp[u.p.job]--
	s.jobReady[u.p.job] = u.prevReady
	s.complete[u.p.job] = u.prevComplete
	s.machFree[u.p.machine] = u.prevFree
	s.machFam[u.p.machine] = u.prevFam
	s.maxEnd = u.prevMaxEnd
	s.scheduled--
}

// branches returns the candidate placements to explore. Without setup times
// the set is restricted to the conflict set: placements whose earliest start
// precedes the earliest achievable completion among all candidates, which
// still reaches every active schedule. With setup times that dominance does
// not hold, because finishing the fastest candidate first can push a
// different family behind the setup delay, so every ready candidate is
// branched on.
func (s *searchState) branches() []placement {
	type cand struct {
		p   placement
		est int
	}
	var list []cand
	bestECT := math.MaxInt
	for j := range s.m.JobOps {
		if s.nextOp[j] >= len(s.m.JobOps[j]) {
			continue
		}
		opIdx := s.m.JobOps[j][s.nextOp[j]]
		iv := &s.m.Ops[opIdx]
		for _, mi := range iv.Machines {
			est, ok := s.earliestStart(j, mi)
			if !ok {
				continue
			}
			list = append(list, cand{p: placement{job: j, op: opIdx, machine: mi, start: est}, est: est})
			if ect := est + iv.Duration; ect < bestECT {
				bestECT = ect
			}
		}
	}
	out := make([]placement, 0, len(list))
	for _, c := range list {
		if s.m.Setup == 0 && c.est >= bestECT {
			continue
		}
		out = append(out, c.p)
	}
	return out
}

// lowerBound underestimates the objective of any completion of the partial
// schedule: the makespan bound is the longest remaining job chain, and the
// tardiness bound uses each job's earliest possible completion.
func (s *searchState) lowerBound() float64 {
	lbMk := s.maxEnd
	var tard float64
	for j := range s.m.JobOps {
		n := len(s.m.JobOps[j])
		var completion int
		if s.nextOp[j] >= n {
			completion = s.complete[j]
		} else {
			remaining := n - s.nextOp[j]
			completion = s.jobReady[j] + s.m.SuffixDuration[j][s.nextOp[j]] + s.m.Gap*(remaining-1)
			if completion > lbMk {
				lbMk = completion
			}
		}
		if due := s.m.Due[j]; due >= 0 && completion > due {
			tard += s.m.Priority[j] * float64(completion-due)
		}
	}
	return s.obj.bound(lbMk, tard)
}

func (s *searchState) snapshot() *incumbent {
	tard := make([]int, len(s.m.JobOps))
	for j := range tard {
		if due := s.m.Due[j]; due >= 0 && s.complete[j] > due {
			tard[j] = s.complete[j] - due
		}
	}
	return &incumbent{
		starts:    append([]int(nil), s.starts...),
		machines:  append([]int(nil), s.machines...),
		makespan:  s.maxEnd,
		tardiness: tard,
		value:     s.obj.Value(s.maxEnd, tard, s.m.Priority),
	}
}

// greedy builds an initial schedule by repeatedly placing the candidate with
// the earliest completion time. It seeds the search with an incumbent so a
// timeout still reports a feasible schedule.
func greedy(m *Model, obj Objective) *incumbent {
	s := newSearchState(m, obj)
	for s.scheduled < len(m.Ops) {
		best := placement{op: -1}
		bestECT := math.MaxInt
		for j := range m.JobOps {
			if s.nextOp[j] >= len(m.JobOps[j]) {
				continue
			}
			opIdx := m.JobOps[j][s.nextOp[j]]
			iv := &m.Ops[opIdx]
			for _, mi := range iv.Machines {
				est, ok := s.earliestStart(j, mi)
				if !ok {
					continue
				}
				if ect := est + iv.Duration; ect < bestECT {
					bestECT = ect
					best = placement{job: j, op: opIdx, machine: mi, start: est}
				}
			}
		}
		if best.op < 0 {
			return nil
		}
		s.place(best)
	}
	return s.snapshot()
}

type bbWorker struct {
	ctx      context.Context
	best     *sharedBest
	nodes    int64
	deadline bool
}

func (w *bbWorker) dfs(s *searchState) {
	w.nodes++
	if w.nodes&0xff == 0 {
		select {
		case <-w.ctx.Done():
			w.deadline = true
			return
		default:
		}
	}
	if s.scheduled == len(s.m.Ops) {
		w.best.update(s.snapshot())
		return
	}
	if s.lowerBound() >= w.best.bound() {
		return
	}
	for _, p := range s.branches() {
		u := s.place(p)
		w.dfs(s)
		s.unplace(u)
		if w.deadline {
			return
		}
	}
}

// runSearch explores the branch-and-bound tree. Root branches are split
// across workers; the seed rotates their order without affecting the proven
// optimum. Returns the incumbent, whether the tree was fully explored, and
// the number of nodes visited.
func runSearch(ctx context.Context, m *Model, obj Objective, workers int, seed int64) (*incumbent, bool, int64, error) {
	best := newSharedBest()
	if inc := greedy(m, obj); inc != nil {
		best.update(inc)
	}

	root := newSearchState(m, obj)
	branches := root.branches()
	if seed != 0 && len(branches) > 1 {
		r := int(seed % int64(len(branches)))
		if r < 0 {
			r = -r
		}
		rot := make([]placement, 0, len(branches))
		rot = append(rot, branches[r:]...)
		rot = append(rot, branches[:r]...)
		branches = rot
	}
	if workers > len(branches) {
		workers = len(branches)
	}
	if workers < 1 {
		workers = 1
	}

	done := make([]bool, workers)
	counts := make([]int64, workers)
	var wg sync.WaitGroup
	for wi := 0; wi < workers; wi++ {
		wg.Add(1)
		go func(wi int) {
			defer wg.Done()
			w := &bbWorker{ctx: ctx, best: best}
			s := root.clone()
			for bi := wi; bi < len(branches) && !w.deadline; bi += workers {
				u := s.place(branches[bi])
				w.dfs(s)
				s.unplace(u)
			}
			done[wi] = !w.deadline
			counts[wi] = w.nodes
		}(wi)
	}
	wg.Wait()

	exhausted := true
	var nodes int64
	for wi := 0; wi < workers; wi++ {
		exhausted = exhausted && done[wi]
		nodes += counts[wi]
	}
	return best.inc, exhausted, nodes, nil
}
