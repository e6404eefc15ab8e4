package mission

import (
	"fmt"
	"time"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

// Machine applies mission transitions to a loaded player. It performs no I/O;
// callers persist the player afterwards.
type Machine struct {
	rng utils.RNG
}

// NewMachine creates a machine sampling replacement tasks from rng
func NewMachine(rng utils.RNG) *Machine {
	return &Machine{rng: rng}
}

// ClaimOutcome reports what a claim paid out and how the slot was handled
type ClaimOutcome struct {
	Task        *domain.Task
	Overtime    bool
	ScoreGained int
	Items       []domain.ItemQuantity
	Replacement string
	RetireTask  bool
}

// NewMission creates an available slot for task
func NewMission(task *domain.Task) domain.Mission {
	m := domain.Mission{TaskID: task.ID, State: domain.MissionAvailable}
	for _, place := range task.CheckPlaces {
		m.CheckPlaces = append(m.CheckPlaces, domain.CheckPlace{Place: place})
	}
	return m
}

func find(p *domain.Player, taskID string) (*domain.Mission, error) {
	idx := p.FindMission(taskID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissionNotFound, taskID)
	}
	return &p.Missions[idx], nil
}

func guard(m *domain.Mission, action string, allowed ...domain.MissionState) error {
	for _, s := range allowed {
		if m.State == s {
			return nil
		}
	}
	return &domain.InvalidStateError{TaskID: m.TaskID, Action: action, State: m.State}
}

// Accept starts an available mission and arms its deadline
func (mc *Machine) Accept(p *domain.Player, task *domain.Task, now time.Time) error {
	m, err := find(p, task.ID)
	if err != nil {
		return err
	}
	if err := guard(m, ActionAccept, domain.MissionAvailable); err != nil {
		return err
	}

	accepted := now
	m.State = domain.MissionInProgress
	m.AcceptedAt = &accepted
	m.ExpiresAt = nil
	if d := task.Duration(); d > 0 {
		expires := accepted.Add(d)
		m.ExpiresAt = &expires
	}
	return nil
}

// Decline parks the mission until DeclineCooldown has passed
func (mc *Machine) Decline(p *domain.Player, taskID string, now time.Time) error {
	m, err := find(p, taskID)
	if err != nil {
		return err
	}
	if err := guard(m, ActionDecline, domain.MissionAvailable, domain.MissionInProgress); err != nil {
		return err
	}

	refreshed := now.Add(DeclineCooldown)
	m.State = domain.MissionDeclined
	m.RefreshedAt = &refreshed
	return nil
}

// Complete marks an in-progress mission done
func (mc *Machine) Complete(p *domain.Player, taskID string) error {
	m, err := find(p, taskID)
	if err != nil {
		return err
	}
	if err := guard(m, ActionComplete, domain.MissionInProgress); err != nil {
		return err
	}
	m.State = domain.MissionCompleted
	return nil
}

// Forfeit gives up an in-progress mission, leaving the slot replaceable
func (mc *Machine) Forfeit(p *domain.Player, taskID string) error {
	m, err := find(p, taskID)
	if err != nil {
		return err
	}
	if err := guard(m, ActionForfeit, domain.MissionInProgress); err != nil {
		return err
	}
	m.State = domain.MissionClaimed
	return nil
}

// CheckPlace marks place visited on an in-progress mission and completes it
// once every place is checked. It reports whether the mission completed.
func (mc *Machine) CheckPlace(p *domain.Player, taskID, place string) (bool, error) {
	m, err := find(p, taskID)
	if err != nil {
		return false, err
	}
	if err := guard(m, ActionCheck, domain.MissionInProgress); err != nil {
		return false, err
	}

	found := false
	done := true
	for i := range m.CheckPlaces {
		if m.CheckPlaces[i].Place == place {
			m.CheckPlaces[i].Checked = true
			found = true
		}
		done = done && m.CheckPlaces[i].Checked
	}
	if !found {
		return false, fmt.Errorf("%w: place %s is not part of mission %s", domain.ErrInvalidInput, place, taskID)
	}
	if done {
		m.State = domain.MissionCompleted
	}
	return done, nil
}

// Claim pays out a completed mission and retires its slot. Items are always
// granted; score only when the deadline has not passed. A generated task is
// retired with no replacement, any other task is replaced by one recurring
// task the player does not hold.
func (mc *Machine) Claim(p *domain.Player, task *domain.Task, pool *Pool, now time.Time) (*ClaimOutcome, error) {
	idx := p.FindMission(task.ID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissionNotFound, task.ID)
	}
	m := p.Missions[idx]
	if err := guard(&m, ActionClaim, domain.MissionCompleted); err != nil {
		return nil, err
	}

	out := &ClaimOutcome{Task: task, Overtime: m.IsOvertime(now)}
	out.Items = append(out.Items, task.RewardItems...)
	p.Backpack = utils.AddItemsToBackpack(p.Backpack, task.RewardItems)
	if !out.Overtime {
		out.ScoreGained = task.RewardScore
		p.Score += task.RewardScore
	}

	p.Missions = append(p.Missions[:idx], p.Missions[idx+1:]...)

	if task.IsLLM {
		out.RetireTask = true
		return out, nil
	}

	exclude := heldTasks(p)
	exclude[task.ID] = true
	if next, ok := utils.Pick(mc.rng, pool.candidates(exclude)); ok {
		p.Missions = append(p.Missions, NewMission(&next))
		out.Replacement = next.ID
	}
	return out, nil
}

// Refresh normalises the slate: declined slots past their cooldown become
// replaceable, replaceable slots are overwritten in place, then new slots are
// appended up to MaxMissionSlots. Falling short is not an error; claimed
// slots left without a replacement are removed. It returns
// the generated tasks whose slots were dropped so callers can retire them.
func (mc *Machine) Refresh(p *domain.Player, pool *Pool, now time.Time) []string {
	for i := range p.Missions {
		m := &p.Missions[i]
		if m.State == domain.MissionDeclined && m.RefreshedAt != nil && !now.Before(*m.RefreshedAt) {
			m.State = domain.MissionClaimed
		}
	}

	// generated or vanished tasks never come back, so their slots are dropped
	var retired []string
	kept := p.Missions[:0]
	for _, m := range p.Missions {
		if m.State == domain.MissionClaimed {
			task, ok := pool.Get(m.TaskID)
			if !ok {
				continue
			}
			if task.IsLLM {
				retired = append(retired, task.ID)
				continue
			}
		}
		kept = append(kept, m)
	}
	p.Missions = kept

	var replaceable []int
	for i, m := range p.Missions {
		if m.State == domain.MissionClaimed {
			replaceable = append(replaceable, i)
		}
	}
	needed := len(replaceable) + max(0, domain.MaxMissionSlots-len(p.Missions))
	if needed == 0 {
		return retired
	}

	picked := utils.SampleUnique(mc.rng, pool.candidates(heldTasks(p)), needed)
	filled := 0
	for _, idx := range replaceable {
		if len(picked) == 0 {
			break
		}
		p.Missions[idx] = NewMission(&picked[0])
		picked = picked[1:]
		filled++
	}
	// claimed slots the catalog could not refill leave the slate short
	if stale := replaceable[filled:]; len(stale) > 0 {
		drop := make(map[int]bool, len(stale))
		for _, idx := range stale {
			drop[idx] = true
		}
		live := p.Missions[:0]
		for i, m := range p.Missions {
			if !drop[i] {
				live = append(live, m)
			}
		}
		p.Missions = live
	}
	for _, t := range picked {
		if len(p.Missions) >= domain.MaxMissionSlots {
			break
		}
		p.Missions = append(p.Missions, NewMission(&t))
	}
	return retired
}

// AddGenerated gives the player a started mission for a freshly generated task
func (mc *Machine) AddGenerated(p *domain.Player, task *domain.Task, now time.Time) error {
	if len(p.Missions) >= domain.MaxMissionSlots {
		return domain.ErrMissionSlotsFull
	}
	m := NewMission(task)
	p.Missions = append(p.Missions, m)
	return mc.Accept(p, task, now)
}

func heldTasks(p *domain.Player) map[string]bool {
	held := make(map[string]bool, len(p.Missions))
	for _, m := range p.Missions {
		held[m.TaskID] = true
	}
	return held
}
