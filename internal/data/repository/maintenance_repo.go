package repository

import (
	"context"
	"fmt"

	"campus-resources/internal/data/entity"
	"campus-resources/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, req *entity.MaintenanceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MaintenanceRequest, error)
	FindAll(ctx context.Context) ([]*entity.MaintenanceRequest, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.MaintenanceRequest, error)
	FindByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]*entity.MaintenanceRequest, error)
	Update(ctx context.Context, req *entity.MaintenanceRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type maintenanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMaintenanceRepository(db database.PgxIface, log *zap.Logger) MaintenanceRepository {
	return &maintenanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "maintenance")),
	}
}

const maintenanceColumns = `id, user_id, title, description, location, priority, status, assigned_to, created_at, updated_at`

// urgent first, then newest
const maintenanceOrder = `
	ORDER BY CASE priority
		WHEN 'urgent' THEN 1
		WHEN 'high' THEN 2
		WHEN 'medium' THEN 3
		WHEN 'low' THEN 4
	END,
	created_at DESC
`

func (r *maintenanceRepository) Create(ctx context.Context, req *entity.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (id, user_id, title, description, location, priority, status, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		req.ID,
		req.UserID,
		req.Title,
		req.Description,
		req.Location,
		req.Priority,
		req.Status,
		req.AssignedTo,
		req.CreatedAt,
		req.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create maintenance request",
			zap.Error(err),
			zap.String("title", req.Title),
			zap.String("user_id", req.UserID.String()),
		)
		return fmt.Errorf("create maintenance request %s: %w", req.Title, err)
	}

	return nil
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE id = $1`

	var req entity.MaintenanceRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.UserID,
		&req.Title,
		&req.Description,
		&req.Location,
		&req.Priority,
		&req.Status,
		&req.AssignedTo,
		&req.CreatedAt,
		&req.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find maintenance request by ID",
			zap.Error(err),
			zap.String("request_id", id.String()),
		)
		return nil, fmt.Errorf("find maintenance request by ID %s: %w", id.String(), err)
	}

	return &req, nil
}

func (r *maintenanceRepository) FindAll(ctx context.Context) ([]*entity.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests ` + maintenanceOrder

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find maintenance requests", zap.Error(err))
		return nil, fmt.Errorf("find all maintenance requests: %w", err)
	}
	defer rows.Close()

	return scanMaintenanceRequests(rows)
}

func (r *maintenanceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find maintenance requests by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find maintenance requests by user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanMaintenanceRequests(rows)
}

func (r *maintenanceRepository) FindByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]*entity.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE assigned_to = $1 ` + maintenanceOrder

	rows, err := r.db.Query(ctx, query, assigneeID)
	if err != nil {
		r.log.Error("Failed to find maintenance requests by assignee",
			zap.Error(err),
			zap.String("assignee_id", assigneeID.String()),
		)
		return nil, fmt.Errorf("find maintenance requests by assignee %s: %w", assigneeID.String(), err)
	}
	defer rows.Close()

	return scanMaintenanceRequests(rows)
}

func (r *maintenanceRepository) Update(ctx context.Context, req *entity.MaintenanceRequest) error {
	query := `
		UPDATE maintenance_requests
		SET title = $2, description = $3, location = $4, priority = $5,
		    status = $6, assigned_to = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		req.ID,
		req.Title,
		req.Description,
		req.Location,
		req.Priority,
		req.Status,
		req.AssignedTo,
		req.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update maintenance request",
			zap.Error(err),
			zap.String("request_id", req.ID.String()),
		)
		return fmt.Errorf("update maintenance request %s: %w", req.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("maintenance request %s not found", req.ID.String())
	}

	return nil
}

func (r *maintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM maintenance_requests WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete maintenance request",
			zap.Error(err),
			zap.String("request_id", id.String()),
		)
		return fmt.Errorf("delete maintenance request %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("maintenance request %s not found", id.String())
	}

	return nil
}

func scanMaintenanceRequests(rows pgx.Rows) ([]*entity.MaintenanceRequest, error) {
	var reqs []*entity.MaintenanceRequest
	for rows.Next() {
		var req entity.MaintenanceRequest
		err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.Title,
			&req.Description,
			&req.Location,
			&req.Priority,
			&req.Status,
			&req.AssignedTo,
			&req.CreatedAt,
			&req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance request row: %w", err)
		}
		reqs = append(reqs, &req)
	}
	return reqs, nil
}
