package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/gamedata"
	"github.com/hunter-yen/hunter-server/internal/repository"
)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t       domain.Task
		rewards []byte
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Difficulty, &t.DurationSec, &rewards,
		&t.RewardScore, &t.IsLLM, &t.CheckPlaces, &t.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rewards, &t.RewardItems); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
	}
	if len(t.CheckPlaces) == 0 {
		t.CheckPlaces = nil
	}
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	defer rows.Close()
	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *CatalogRepository) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1`
	t, err := scanTask(r.db.QueryRow(ctx, query, taskID))
	if err != nil {
		return nil, notFound(err, domain.ErrTaskNotFound, taskID, ErrMsgFailedToGetTask)
	}
	return t, nil
}

// GetTasks returns the tasks that exist among taskIDs, in request order
func (r *CatalogRepository) GetTasks(ctx context.Context, taskIDs []string) ([]domain.Task, error) {
	if len(taskIDs) == 0 {
		return []domain.Task{}, nil
	}
	query := `
		SELECT ` + taskColumns + `
		FROM tasks JOIN unnest($1::text[]) WITH ORDINALITY AS req(id, ord) ON req.id = tasks.task_id
		ORDER BY req.ord
	`
	rows, err := r.db.Query(ctx, query, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTasks, err)
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTasks, err)
	}
	return tasks, nil
}

// ListTasks returns tasks ordered by ID
func (r *CatalogRepository) ListTasks(ctx context.Context, includeLLM bool) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ($1 OR NOT is_llm) ORDER BY task_id`
	rows, err := r.db.Query(ctx, query, includeLLM)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTasks, err)
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTasks, err)
	}
	return tasks, nil
}

func (r *CatalogRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	return insertTask(ctx, r.db, task, false)
}

// DeleteTask is a no-op for unknown IDs
func (r *CatalogRepository) DeleteTask(ctx context.Context, taskID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteTask, err)
	}
	return nil
}

func insertTask(ctx context.Context, q querier, task *domain.Task, upsert bool) error {
	rewards := task.RewardItems
	if rewards == nil {
		rewards = []domain.ItemQuantity{}
	}
	rewardsJSON, err := json.Marshal(rewards)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalCatalog, err)
	}
	places := task.CheckPlaces
	if places == nil {
		places = []string{}
	}

	query := `
		INSERT INTO tasks (task_id, name, description, difficulty, duration_sec, reward_items, reward_score, is_llm, check_places)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if upsert {
		query += `
		ON CONFLICT (task_id) DO UPDATE SET
			name = EXCLUDED.name, description = EXCLUDED.description, difficulty = EXCLUDED.difficulty,
			duration_sec = EXCLUDED.duration_sec, reward_items = EXCLUDED.reward_items,
			reward_score = EXCLUDED.reward_score, is_llm = EXCLUDED.is_llm, check_places = EXCLUDED.check_places`
	}
	query += ` RETURNING created_at`

	err = q.QueryRow(ctx, query, task.ID, task.Name, task.Description, task.Difficulty, task.DurationSec,
		rewardsJSON, task.RewardScore, task.IsLLM, places).Scan(&task.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: task %s already exists", domain.ErrInvalidInput, task.ID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertTask, err)
	}
	return nil
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var itemType string
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Func, &itemType, &item.Rarity, &item.ResultID); err != nil {
		return nil, err
	}
	item.Type = domain.ItemType(itemType)
	return &item, nil
}

func (r *CatalogRepository) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1`
	item, err := scanItem(r.db.QueryRow(ctx, query, itemID))
	if err != nil {
		return nil, notFound(err, domain.ErrItemNotFound, itemID, ErrMsgFailedToGetItem)
	}
	return item, nil
}

// GetItemByName matches names exactly, falling back to case-insensitive
func (r *CatalogRepository) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE name = $1 OR LOWER(name) = LOWER($1)
		ORDER BY (name = $1) DESC, item_id
		LIMIT 1
	`
	item, err := scanItem(r.db.QueryRow(ctx, query, name))
	if err != nil {
		return nil, notFound(err, domain.ErrItemNotFound, name, ErrMsgFailedToGetItem)
	}
	return item, nil
}

// ListItems returns items ordered by ID
func (r *CatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return items, nil
}

func (r *CatalogRepository) GetDropRule(ctx context.Context, difficulty int) (*domain.DropRule, error) {
	var (
		rule    domain.DropRule
		chances []byte
	)
	query := `SELECT difficulty, min_count, max_count, rarity_chances, guaranteed_rarity FROM drop_rules WHERE difficulty = $1`
	err := r.db.QueryRow(ctx, query, difficulty).Scan(&rule.Difficulty, &rule.MinCount, &rule.MaxCount, &chances, &rule.GuaranteedRarity)
	if err != nil {
		return nil, notFound(err, domain.ErrInvalidDifficulty, fmt.Sprint(difficulty), ErrMsgFailedToGetDropRule)
	}
	if err := json.Unmarshal(chances, &rule.RarityChances); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
	}
	return &rule, nil
}

// GetDropPools returns pools in insertion order
func (r *CatalogRepository) GetDropPools(ctx context.Context) ([]domain.DropPool, error) {
	rows, err := r.db.Query(ctx, `SELECT id, rarity, item_ids FROM drop_pools ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDropPools, err)
	}
	defer rows.Close()

	pools := []domain.DropPool{}
	for rows.Next() {
		var p domain.DropPool
		if err := rows.Scan(&p.ID, &p.Rarity, &p.ItemIDs); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDropPools, err)
		}
		pools = append(pools, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDropPools, err)
	}
	return pools, nil
}

func (r *CatalogRepository) GetSupplyStation(ctx context.Context, stationID string) (*domain.SupplyStation, error) {
	var st domain.SupplyStation
	query := `SELECT station_id, name, latitude, longitude FROM supply_stations WHERE station_id = $1`
	if err := r.db.QueryRow(ctx, query, stationID).Scan(&st.ID, &st.Name, &st.Latitude, &st.Longitude); err != nil {
		return nil, notFound(err, domain.ErrStationNotFound, stationID, ErrMsgFailedToGetStation)
	}
	return &st, nil
}

func (r *CatalogRepository) ListSupplyStations(ctx context.Context) ([]domain.SupplyStation, error) {
	rows, err := r.db.Query(ctx, `SELECT station_id, name, latitude, longitude FROM supply_stations ORDER BY station_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListStations, err)
	}
	defer rows.Close()

	stations := []domain.SupplyStation{}
	for rows.Next() {
		var st domain.SupplyStation
		if err := rows.Scan(&st.ID, &st.Name, &st.Latitude, &st.Longitude); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListStations, err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListStations, err)
	}
	return stations, nil
}

// SeedCatalog upserts items, tasks and stations and replaces drop rules and pools
// in one transaction. Generated tasks already stored are left alone.
func (r *CatalogRepository) SeedCatalog(ctx context.Context, c gamedata.Catalog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, item := range c.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO items (item_id, name, description, func, type, rarity, result_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (item_id) DO UPDATE SET
				name = EXCLUDED.name, description = EXCLUDED.description, func = EXCLUDED.func,
				type = EXCLUDED.type, rarity = EXCLUDED.rarity, result_id = EXCLUDED.result_id`,
			item.ID, item.Name, item.Description, item.Func, string(item.Type), item.Rarity, item.ResultID)
		if err != nil {
			return fmt.Errorf("%s: item %s: %w", ErrMsgFailedToSeedCatalog, item.ID, err)
		}
	}

	for i := range c.Tasks {
		task := c.Tasks[i]
		if err := insertTask(ctx, tx, &task, true); err != nil {
			return fmt.Errorf("%s: task %s: %w", ErrMsgFailedToSeedCatalog, task.ID, err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM drop_rules`); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSeedCatalog, err)
	}
	for _, rule := range c.DropRules {
		chances, err := json.Marshal(rule.RarityChances)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalCatalog, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO drop_rules (difficulty, min_count, max_count, rarity_chances, guaranteed_rarity)
			VALUES ($1, $2, $3, $4, $5)`,
			rule.Difficulty, rule.MinCount, rule.MaxCount, chances, rule.GuaranteedRarity)
		if err != nil {
			return fmt.Errorf("%s: drop rule %d: %w", ErrMsgFailedToSeedCatalog, rule.Difficulty, err)
		}
	}

	if _, err := tx.Exec(ctx, `TRUNCATE drop_pools RESTART IDENTITY`); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSeedCatalog, err)
	}
	for _, pool := range c.DropPools {
		if _, err := tx.Exec(ctx, `INSERT INTO drop_pools (rarity, item_ids) VALUES ($1, $2)`, pool.Rarity, pool.ItemIDs); err != nil {
			return fmt.Errorf("%s: drop pool rarity %d: %w", ErrMsgFailedToSeedCatalog, pool.Rarity, err)
		}
	}

	for _, st := range c.Stations {
		_, err := tx.Exec(ctx, `
			INSERT INTO supply_stations (station_id, name, latitude, longitude)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (station_id) DO UPDATE SET
				name = EXCLUDED.name, latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude`,
			st.ID, st.Name, st.Latitude, st.Longitude)
		if err != nil {
			return fmt.Errorf("%s: station %s: %w", ErrMsgFailedToSeedCatalog, st.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}

	slog.Default().Info(LogMsgCatalogSeeded,
		"items", len(c.Items), "tasks", len(c.Tasks), "drop_rules", len(c.DropRules),
		"drop_pools", len(c.DropPools), "stations", len(c.Stations))
	return nil
}

var (
	_ repository.Catalog = (*CatalogRepository)(nil)
	_ gamedata.Seeder    = (*CatalogRepository)(nil)
)
