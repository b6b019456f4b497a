package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"insa-partnership-backend/internal/apperr"
	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/repository"
)

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

const activityColumns = `id, partner_id, title, description, assigned_to, status, deadline, completed_at, created_by, created_on, updated_on`

func (r *activityRepository) Create(ctx context.Context, a *domain.PartnershipActivity) error {
	query := `INSERT INTO partnership_activities (partner_id, title, description, assigned_to, status, deadline, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		a.PartnerID, a.Title, a.Description, a.AssignedTo, a.Status, a.Deadline,
		a.CreatedBy, time.Now(), time.Now()).Scan(&a.ID)
}

func (r *activityRepository) GetByID(ctx context.Context, id int32) (*domain.PartnershipActivity, error) {
	a := &domain.PartnershipActivity{}
	query := `SELECT ` + activityColumns + ` FROM partnership_activities WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.PartnerID, &a.Title,
		&a.Description, &a.AssignedTo, &a.Status, &a.Deadline, &a.CompletedAt,
		&a.CreatedBy, &a.CreatedOn, &a.UpdatedOn)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("activity", fmt.Sprint(id))
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *activityRepository) Update(ctx context.Context, a *domain.PartnershipActivity) error {
	query := `UPDATE partnership_activities SET status=$1, completed_at=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, a.Status, a.CompletedAt, time.Now(), a.ID)
	return err
}

func (r *activityRepository) ListByPartner(ctx context.Context, partnerID int32) ([]domain.PartnershipActivity, error) {
	query := `SELECT ` + activityColumns + ` FROM partnership_activities WHERE partner_id = $1 ORDER BY deadline ASC`
	return r.queryActivities(ctx, query, partnerID)
}

func (r *activityRepository) ListDueWithin(ctx context.Context, days int) ([]domain.PartnershipActivity, error) {
	cutoff := time.Now().AddDate(0, 0, days)
	query := `SELECT ` + activityColumns + ` FROM partnership_activities WHERE status != 'COMPLETED' AND deadline <= $1 ORDER BY deadline ASC`
	return r.queryActivities(ctx, query, cutoff)
}

func (r *activityRepository) queryActivities(ctx context.Context, query string, args ...interface{}) ([]domain.PartnershipActivity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.PartnershipActivity
	for rows.Next() {
		var a domain.PartnershipActivity
		if err := rows.Scan(&a.ID, &a.PartnerID, &a.Title, &a.Description, &a.AssignedTo,
			&a.Status, &a.Deadline, &a.CompletedAt, &a.CreatedBy, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
