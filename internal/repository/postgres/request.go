package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"insa-partnership-backend/internal/apperr"
	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, submitter_id, type, status, current_stage, flags_set, flags, partnership_type, framework_type, duration, company_details, attachments, approvals, revision, created_on, updated_on`

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	flags, duration, company, attachments, approvals, err := marshalRequestJSON(req)
	if err != nil {
		return err
	}

	query := `INSERT INTO partnership_requests (submitter_id, type, status, current_stage, flags_set, flags, partnership_type, framework_type, duration, company_details, attachments, approvals, revision, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		req.SubmitterID, req.Type, req.Status, req.CurrentStage, req.FlagsSet,
		flags, req.PartnershipType, req.FrameworkType, duration, company,
		attachments, approvals, req.Revision, time.Now(), time.Now(),
	).Scan(&req.ID)
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM partnership_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("partnership request", fmt.Sprint(id))
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

const requestUpdateQuery = `UPDATE partnership_requests
	          SET status=$1, current_stage=$2, flags_set=$3, flags=$4, partnership_type=$5, framework_type=$6, duration=$7, company_details=$8, attachments=$9, approvals=$10, revision=revision+1, updated_on=$11
	          WHERE id=$12 AND revision=$13`

// Update writes the whole request back, guarded by the revision the caller
// read. Zero rows affected means another transition won the race.
func (r *requestRepository) Update(ctx context.Context, req *domain.Request) error {
	flags, duration, company, attachments, approvals, err := marshalRequestJSON(req)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, requestUpdateQuery,
		req.Status, req.CurrentStage, req.FlagsSet, flags, req.PartnershipType,
		req.FrameworkType, duration, company, attachments, approvals,
		time.Now(), req.ID, req.Revision)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.Conflict("request was modified concurrently, retry")
	}
	req.Revision++
	return nil
}

// ApproveAndPromote is the promotion commit point. The approved request and
// its partner land in one transaction; a failed partner insert rolls the
// approval back, so an approved request without a partner is never durable.
func (r *requestRepository) ApproveAndPromote(ctx context.Context, req *domain.Request, partner *domain.Partner) error {
	flags, duration, company, attachments, approvals, err := marshalRequestJSON(req)
	if err != nil {
		return err
	}
	pCompany, pDuration, pAttachments, privileges, err := marshalPartnerJSON(partner)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, requestUpdateQuery,
		req.Status, req.CurrentStage, req.FlagsSet, flags, req.PartnershipType,
		req.FrameworkType, duration, company, attachments, approvals,
		time.Now(), req.ID, req.Revision)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.Conflict("request was modified concurrently, retry")
	}

	err = tx.QueryRowContext(ctx, partnerInsertQuery,
		partner.RequestID, pCompany, partner.FrameworkType, partner.PartnershipType,
		pDuration, pAttachments, partner.Status, partner.IsSigned, partner.SignedAt,
		partner.SignedBy, privileges, time.Now(), time.Now(),
	).Scan(&partner.ID)
	if isUniqueViolation(err) {
		return apperr.Conflict(fmt.Sprintf("partner already exists for request %d", partner.RequestID))
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	req.Revision++
	return nil
}

func (r *requestRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM partnership_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("partnership request", fmt.Sprint(id))
	}
	return nil
}

func (r *requestRepository) ListByStage(ctx context.Context, stage domain.ReviewStage, page, pageSize int32) ([]domain.Request, int32, error) {
	where := `WHERE current_stage = $1 AND status IN ('PENDING', 'IN_REVIEW')`
	return r.list(ctx, where, []interface{}{stage}, page, pageSize)
}

func (r *requestRepository) ListBySubmitter(ctx context.Context, submitterID int32, page, pageSize int32) ([]domain.Request, int32, error) {
	return r.list(ctx, `WHERE submitter_id = $1`, []interface{}{submitterID}, page, pageSize)
}

func (r *requestRepository) list(ctx context.Context, where string, args []interface{}, page, pageSize int32) ([]domain.Request, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM partnership_requests ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT %s FROM partnership_requests %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d`,
		requestColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, count, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.Request, error) {
	req := &domain.Request{}
	var flags, duration, company, attachments, approvals []byte
	err := row.Scan(&req.ID, &req.SubmitterID, &req.Type, &req.Status, &req.CurrentStage,
		&req.FlagsSet, &flags, &req.PartnershipType, &req.FrameworkType, &duration,
		&company, &attachments, &approvals, &req.Revision, &req.CreatedOn, &req.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if err := unmarshalInto(flags, &req.Flags); err != nil {
		return nil, err
	}
	if err := unmarshalInto(duration, &req.Duration); err != nil {
		return nil, err
	}
	if err := unmarshalInto(company, &req.CompanyDetails); err != nil {
		return nil, err
	}
	if err := unmarshalInto(attachments, &req.Attachments); err != nil {
		return nil, err
	}
	if err := unmarshalInto(approvals, &req.Approvals); err != nil {
		return nil, err
	}
	return req, nil
}

func marshalRequestJSON(req *domain.Request) (flags, duration, company, attachments, approvals []byte, err error) {
	if flags, err = json.Marshal(req.Flags); err != nil {
		return
	}
	if duration, err = json.Marshal(req.Duration); err != nil {
		return
	}
	if company, err = json.Marshal(req.CompanyDetails); err != nil {
		return
	}
	if attachments, err = json.Marshal(req.Attachments); err != nil {
		return
	}
	approvals, err = json.Marshal(req.Approvals)
	return
}

func unmarshalInto(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
