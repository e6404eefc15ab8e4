package mission

import "github.com/hunter-yen/hunter-server/internal/domain"

// Pool is a snapshot of the task catalog used by one operation
type Pool struct {
	tasks []domain.Task
	byID  map[string]*domain.Task
}

// NewPool indexes tasks by ID. Order is kept for deterministic sampling.
func NewPool(tasks []domain.Task) *Pool {
	p := &Pool{tasks: tasks, byID: make(map[string]*domain.Task, len(tasks))}
	for i := range p.tasks {
		p.byID[p.tasks[i].ID] = &p.tasks[i]
	}
	return p
}

// Get returns the task with id
func (p *Pool) Get(id string) (*domain.Task, bool) {
	t, ok := p.byID[id]
	return t, ok
}

// candidates lists recurring tasks whose IDs are not excluded
func (p *Pool) candidates(exclude map[string]bool) []domain.Task {
	out := make([]domain.Task, 0, len(p.tasks))
	for _, t := range p.tasks {
		if t.IsLLM || exclude[t.ID] {
			continue
		}
		out = append(out, t)
	}
	return out
}
