package proposals

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/smartirrigation/internal/common"
	"github.com/dmitrijs2005/smartirrigation/internal/dbx"
	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/google/uuid"
)

// DB is the handle PostgresRepository needs: plain queries plus
// transactions for DeleteOwned. *sql.DB satisfies it.
type DB interface {
	dbx.DBTX
	dbx.TxBeginner
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Proposal) (*models.Proposal, error) {
	query :=
		`INSERT INTO proposals (id, title, description, price, target_crops, proposer_id, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	created := clone(*p)
	created.ID = uuid.NewString()

	crops, err := json.Marshal(created.TargetCrops)
	if err != nil {
		return nil, fmt.Errorf("encode target crops: %w", err)
	}

	err = r.db.QueryRowContext(ctx, query,
		created.ID, created.Title, created.Description, created.Price, string(crops),
		created.Proposer.ID, string(created.Status)).Scan(&created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &created, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]models.Proposal, error) {
	query :=
		`SELECT p.id, p.title, p.description, p.price, p.target_crops, p.status, p.created_at,
		        u.id, u.name, u.email
		 FROM proposals p
		 JOIN users u ON u.id = p.proposer_id
		 WHERE p.status = $1
		 ORDER BY p.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, string(models.ProposalActive))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Proposal, 0)
	for rows.Next() {
		var (
			p      models.Proposal
			crops  []byte
			status string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &crops, &status, &p.CreatedAt,
			&p.Proposer.ID, &p.Proposer.Name, &p.Proposer.Email); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(crops, &p.TargetCrops); err != nil {
			return nil, fmt.Errorf("decode target crops: %w", err)
		}
		if p.TargetCrops == nil {
			p.TargetCrops = []string{}
		}
		p.Status = models.ProposalStatus(status)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var owner string
		err := tx.QueryRowContext(ctx, `SELECT proposer_id FROM proposals WHERE id = $1 FOR UPDATE`, id).Scan(&owner)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}

		if owner != ownerID {
			return common.ErrorForbidden
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM proposals WHERE id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}
