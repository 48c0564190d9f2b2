package maze

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Cell   `json:"current"`
	Frontier  []Cell `json:"frontier"`
	Visited   []Cell `json:"visited"`
	Done      bool   `json:"done"`
	Found     bool   `json:"found"`
	Path      Path   `json:"path,omitempty"`
	StepIndex int    `json:"step"`
}

// Stepper runs the same search as FindPath one frontier selection at a time.
// It is not safe for concurrent use.
type Stepper struct {
	search    *search
	stepCount int
}

// NewStepper validates the input and prepares a search positioned before its
// first selection.
func NewStepper(grid *Grid, start, goal Cell, options ...Option) (*Stepper, error) {
	if err := validateEndpoints(grid, start, goal); err != nil {
		return nil, err
	}
	opts := applyOptions(options)
	return &Stepper{search: newSearch(grid, start, goal, opts.Heuristic)}, nil
}

// Step advances the search by one selection and returns a snapshot. Once the
// search is done further calls return the final snapshot unchanged.
func (s *Stepper) Step() StepSnapshot {
	if !s.search.done {
		s.stepCount++
		s.search.step()
	}
	return s.Snapshot()
}

// Snapshot returns the current state without advancing.
func (s *Stepper) Snapshot() StepSnapshot {
	return StepSnapshot{
		Current:   s.search.current,
		Frontier:  s.search.frontierCells(),
		Visited:   s.search.visitedCells(),
		Done:      s.search.done,
		Found:     s.search.found,
		Path:      s.search.path(),
		StepIndex: s.stepCount,
	}
}

// Done reports whether the search has terminated.
func (s *Stepper) Done() bool { return s.search.done }

// Result returns the search outcome so far. It matches FindPath once Done.
func (s *Stepper) Result() Result { return s.search.result() }

// Run steps until the search terminates and returns the final snapshot.
// When visit is non-nil it receives the snapshot after every step; snapshots
// are built only for visit and are not retained.
func (s *Stepper) Run(visit func(StepSnapshot)) StepSnapshot {
	for !s.search.done {
		s.stepCount++
		s.search.step()
		if visit != nil {
			visit(s.Snapshot())
		}
	}
	return s.Snapshot()
}
