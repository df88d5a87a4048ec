package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"feelre/internal/model"
	"feelre/internal/utils"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresProvider serves the catalog from PostgreSQL. SQL keeps the pool
// broad (budget ceiling or the derived price-bucket tag) so the core
// matching stage still sees enough candidates for its fallbacks.
type PostgresProvider struct {
	db *sqlx.DB
}

// NewPostgresProvider connects to the catalog database
func NewPostgresProvider(dsn string, maxConn, maxIdleConn int) (*PostgresProvider, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresProvider{db: db}, nil
}

// Close closes the database connection
func (p *PostgresProvider) Close() error {
	return p.db.Close()
}

// Name identifies the provider in logs
func (p *PostgresProvider) Name() string { return "postgres" }

const catalogColumns = `id, title, image, price, currency, tags, shop, rating, reviews_count, deep_link`

// Search fetches the candidate pool for the fused intent
func (p *PostgresProvider) Search(ctx context.Context, signals *model.Signals, opts SearchOptions) ([]model.CatalogItem, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 40
	}

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if signals.Constraints.BudgetMax != nil {
		// Keep bucket-tagged items alongside in-budget ones so the core
		// price-bucket fallback still has candidates to work with
		bucket := priceBucketTag(*signals.Constraints.BudgetMax)
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(price <= $%d OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) t WHERE t = $%d))",
			argIndex, argIndex+1))
		args = append(args, *signals.Constraints.BudgetMax, bucket)
		argIndex += 2
	}

	if len(signals.Constraints.BrandBlacklist) > 0 {
		for _, brand := range signals.Constraints.BrandBlacklist {
			whereClauses = append(whereClauses, fmt.Sprintf("(shop IS NULL OR shop NOT ILIKE $%d)", argIndex))
			args = append(args, "%"+brand+"%")
			argIndex++
		}
	}

	whereClause := strings.Join(whereClauses, " AND ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM catalog_items
		WHERE %s
		ORDER BY rating DESC NULLS LAST, price ASC
		LIMIT $%d
	`, catalogColumns, whereClause, argIndex)
	args = append(args, limit)

	var items []model.CatalogItem
	if err := p.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch catalog items: %w", err)
	}
	return items, nil
}

// priceBucketTag mirrors the bucket taxonomy catalog items are tagged with
func priceBucketTag(v float64) string {
	switch {
	case v <= 30:
		return "budget_0_30"
	case v <= 50:
		return "budget_31_50"
	case v <= 100:
		return "budget_51_100"
	default:
		return "budget_100_plus"
	}
}

// GetItem retrieves a single catalog item by its ID
func (p *PostgresProvider) GetItem(ctx context.Context, itemID string) (*model.CatalogItem, error) {
	var item model.CatalogItem
	query := fmt.Sprintf(`SELECT %s FROM catalog_items WHERE id = $1`, catalogColumns)
	err := p.db.GetContext(ctx, &item, query, itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}
	return &item, nil
}

// BatchUpdateEmbeddings updates embeddings for multiple catalog items
func (p *PostgresProvider) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errors []string

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE catalog_items SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		if _, err := stmt.ExecContext(ctx, vec, item.ItemID); err != nil {
			errors = append(errors, fmt.Sprintf("item %s: %v", item.ItemID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// LogTurn records one completed conversational turn
func (p *PostgresProvider) LogTurn(ctx context.Context, message string, signals *model.Signals, replyType string, itemIDs []string, tookMs int) error {
	tags := utils.UnionTags(signals.RecipientProfile.Interests, signals.GiftContext.Vibe)
	query := `
		INSERT INTO turn_logs (message, reply_type, relation, occasion, budget_max, tags, returned_item_ids, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := p.db.ExecContext(ctx, query,
		message,
		replyType,
		signals.RecipientProfile.Relation,
		signals.GiftContext.Occasion,
		signals.Constraints.BudgetMax,
		model.JSONArray(tags),
		model.JSONArray(itemIDs),
		tookMs,
	)
	if err != nil {
		return fmt.Errorf("failed to log turn: %w", err)
	}
	return nil
}
