package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayware/priceflow/internal/rules"
)

// PostgresStore is a PostgreSQL implementation of Store. Conditions and
// actions are stored as jsonb; scope columns are indexed for the hot
// GetActiveRules path.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const ruleColumns = `id, name, category, priority, organization_id, property_id, conditions, actions, active, updated_at`

func (p *PostgresStore) GetActiveRules(ctx context.Context, organizationID, propertyID string, category rules.Category) ([]rules.Definition, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules
		WHERE active = true
		  AND category = $1
		  AND organization_id = $2
		  AND (property_id = '' OR property_id = $3)
		ORDER BY priority, id`

	rows, err := p.pool.Query(ctx, query, string(category), organizationID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("query active rules: %w", err)
	}
	defer rows.Close()

	return scanDefinitions(rows)
}

func (p *PostgresStore) ListRules(ctx context.Context, organizationID string) ([]rules.Definition, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules
		WHERE ($1 = '' OR organization_id = $1)
		ORDER BY priority, id`

	rows, err := p.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	return scanDefinitions(rows)
}

func (p *PostgresStore) GetRule(ctx context.Context, id string) (*rules.Definition, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules WHERE id = $1`

	row := p.pool.QueryRow(ctx, query, id)
	def, err := scanDefinition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &def, nil
}

func (p *PostgresStore) UpsertRule(ctx context.Context, def rules.Definition) error {
	conditions, err := json.Marshal(def.Conditions)
	if err != nil {
		return fmt.Errorf("encode conditions: %w", err)
	}
	actions, err := json.Marshal(def.Actions)
	if err != nil {
		return fmt.Errorf("encode actions: %w", err)
	}

	query := `INSERT INTO pricing_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			priority = EXCLUDED.priority,
			organization_id = EXCLUDED.organization_id,
			property_id = EXCLUDED.property_id,
			conditions = EXCLUDED.conditions,
			actions = EXCLUDED.actions,
			active = EXCLUDED.active,
			updated_at = now()`

	_, err = p.pool.Exec(ctx, query,
		def.ID, def.Name, string(def.Category), def.Priority,
		def.Scope.OrganizationID, def.Scope.PropertyID,
		conditions, actions, def.Active)
	if err != nil {
		return fmt.Errorf("upsert rule %s: %w", def.ID, err)
	}
	return nil
}

func (p *PostgresStore) DeleteRule(ctx context.Context, id string) error {
	// Idempotent: deleting a missing rule is not an error.
	if _, err := p.pool.Exec(ctx, `DELETE FROM pricing_rules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete rule %s: %w", id, err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

func scanDefinitions(rows pgx.Rows) ([]rules.Definition, error) {
	defs := make([]rules.Definition, 0, 16)
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func scanDefinition(row pgx.Row) (rules.Definition, error) {
	var (
		def        rules.Definition
		category   string
		conditions []byte
		actions    []byte
	)
	err := row.Scan(&def.ID, &def.Name, &category, &def.Priority,
		&def.Scope.OrganizationID, &def.Scope.PropertyID,
		&conditions, &actions, &def.Active, &def.UpdatedAt)
	if err != nil {
		return rules.Definition{}, err
	}

	def.Category = rules.Category(category)
	if len(conditions) > 0 {
		if err := json.Unmarshal(conditions, &def.Conditions); err != nil {
			return rules.Definition{}, fmt.Errorf("decode conditions for rule %s: %w", def.ID, err)
		}
	}
	if len(actions) > 0 {
		if err := json.Unmarshal(actions, &def.Actions); err != nil {
			return rules.Definition{}, fmt.Errorf("decode actions for rule %s: %w", def.ID, err)
		}
	}
	return def, nil
}
