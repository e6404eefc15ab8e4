package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/gamedata"
)

// SeedCatalog replaces the reference data with the given catalog
func (s *Store) SeedCatalog(_ context.Context, c gamedata.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*domain.Item, len(c.Items))
	for i := range c.Items {
		item := c.Items[i]
		s.items[item.ID] = &item
	}
	s.tasks = make(map[string]*domain.Task, len(c.Tasks))
	for i := range c.Tasks {
		task := c.Tasks[i]
		s.tasks[task.ID] = &task
	}
	s.dropRules = make(map[int]*domain.DropRule, len(c.DropRules))
	for i := range c.DropRules {
		rule := c.DropRules[i]
		s.dropRules[rule.Difficulty] = &rule
	}
	s.dropPools = append([]domain.DropPool(nil), c.DropPools...)
	s.stations = make(map[string]*domain.SupplyStation, len(c.Stations))
	s.stationList = s.stationList[:0]
	for i := range c.Stations {
		st := c.Stations[i]
		s.stations[st.ID] = &st
		s.stationList = append(s.stationList, st.ID)
	}
	return nil
}

func (s *Store) GetTask(_ context.Context, taskID string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	c := *t
	return &c, nil
}

// GetTasks returns the tasks that exist among taskIDs, in request order
func (s *Store) GetTasks(_ context.Context, taskIDs []string) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, 0, len(taskIDs))
	for _, id := range taskIDs {
		if t, ok := s.tasks[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

// ListTasks returns tasks ordered by ID
func (s *Store) ListTasks(_ context.Context, includeLLM bool) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.IsLLM && !includeLLM {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateTask(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[task.ID]; exists {
		return fmt.Errorf("%w: task %s already exists", domain.ErrInvalidInput, task.ID)
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now().UTC()
	}
	c := *task
	s.tasks[task.ID] = &c
	return nil
}

// DeleteTask is a no-op for unknown IDs
func (s *Store) DeleteTask(_ context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, taskID)
	return nil
}

func (s *Store) GetItem(_ context.Context, itemID string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	c := *item
	return &c, nil
}

// GetItemByName matches names exactly, falling back to case-insensitive
func (s *Store) GetItemByName(_ context.Context, name string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.Name == name {
			c := *item
			return &c, nil
		}
	}
	for _, item := range s.items {
		if strings.EqualFold(item.Name, name) {
			c := *item
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, name)
}

func (s *Store) ListItems(_ context.Context) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetDropRule(_ context.Context, difficulty int) (*domain.DropRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rule, ok := s.dropRules[difficulty]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidDifficulty, difficulty)
	}
	c := *rule
	c.RarityChances = append([]domain.RarityChance(nil), rule.RarityChances...)
	return &c, nil
}

func (s *Store) GetDropPools(_ context.Context) ([]domain.DropPool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DropPool, len(s.dropPools))
	for i, p := range s.dropPools {
		out[i] = p
		out[i].ItemIDs = append([]string(nil), p.ItemIDs...)
	}
	return out, nil
}

func (s *Store) GetSupplyStation(_ context.Context, stationID string) (*domain.SupplyStation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stations[stationID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStationNotFound, stationID)
	}
	c := *st
	return &c, nil
}

// ListSupplyStations returns stations in seed order
func (s *Store) ListSupplyStations(_ context.Context) ([]domain.SupplyStation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SupplyStation, 0, len(s.stationList))
	for _, id := range s.stationList {
		out = append(out, *s.stations[id])
	}
	return out, nil
}
