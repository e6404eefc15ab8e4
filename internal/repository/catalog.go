package repository

import (
	"context"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

// Task defines persistence for mission task definitions
type Task interface {
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	GetTasks(ctx context.Context, taskIDs []string) ([]domain.Task, error)
	ListTasks(ctx context.Context, includeLLM bool) ([]domain.Task, error)
	CreateTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, taskID string) error
}

// Item defines read access to the item catalog
type Item interface {
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
}

// Drop defines read access to drop rules and pools
type Drop interface {
	GetDropRule(ctx context.Context, difficulty int) (*domain.DropRule, error)
	GetDropPools(ctx context.Context) ([]domain.DropPool, error)
}

// SupplyStation defines read access to supply stations
type SupplyStation interface {
	GetSupplyStation(ctx context.Context, stationID string) (*domain.SupplyStation, error)
	ListSupplyStations(ctx context.Context) ([]domain.SupplyStation, error)
}

// Catalog groups all reference-data stores
type Catalog interface {
	Task
	Item
	Drop
	SupplyStation
}
