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

type partnerRepository struct {
	db *sql.DB
}

func NewPartnerRepository(db *sql.DB) repository.PartnerRepository {
	return &partnerRepository{db: db}
}

const partnerColumns = `id, request_id, company_details, framework_type, partnership_type, duration, approval_attachments, status, is_signed, signed_at, signed_by, privileges, created_on, updated_on`

// Partners are only ever inserted through ApproveAndPromote; the unique
// index on request_id backs up the service-level duplicate guard under
// concurrent promotions.
const partnerInsertQuery = `INSERT INTO partners (request_id, company_details, framework_type, partnership_type, duration, approval_attachments, status, is_signed, signed_at, signed_by, privileges, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`

func (r *partnerRepository) GetByID(ctx context.Context, id int32) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE id = $1`
	p, err := scanPartner(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("partner", fmt.Sprint(id))
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *partnerRepository) GetByRequestID(ctx context.Context, requestID int32) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE request_id = $1`
	p, err := scanPartner(r.db.QueryRowContext(ctx, query, requestID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *partnerRepository) Update(ctx context.Context, p *domain.Partner) error {
	_, _, _, privileges, err := marshalPartnerJSON(p)
	if err != nil {
		return err
	}

	query := `UPDATE partners SET status=$1, is_signed=$2, signed_at=$3, signed_by=$4, privileges=$5, updated_on=$6 WHERE id=$7`
	_, err = r.db.ExecContext(ctx, query, p.Status, p.IsSigned, p.SignedAt, p.SignedBy, privileges, time.Now(), p.ID)
	return err
}

func (r *partnerRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Partner, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM partners`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + partnerColumns + ` FROM partners ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var partners []domain.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, 0, err
		}
		partners = append(partners, *p)
	}
	return partners, count, rows.Err()
}

// A partner is visible unless it is operational AND its privilege map holds
// an explicit false for the role. Filtering in SQL keeps page sizes and the
// total consistent under pagination.
const partnerVisibleWhere = `WHERE partnership_type <> 'OPERATIONAL' OR privileges IS NULL OR COALESCE(privileges->>$1, 'true') <> 'false'`

func (r *partnerRepository) ListVisibleTo(ctx context.Context, role domain.ReviewStage, page, pageSize int32) ([]domain.Partner, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM partners ` + partnerVisibleWhere
	if err := r.db.QueryRowContext(ctx, countQuery, role).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + partnerColumns + ` FROM partners ` + partnerVisibleWhere + ` ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, role, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var partners []domain.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, 0, err
		}
		partners = append(partners, *p)
	}
	return partners, count, rows.Err()
}

func scanPartner(row rowScanner) (*domain.Partner, error) {
	p := &domain.Partner{}
	var company, duration, attachments, privileges []byte
	err := row.Scan(&p.ID, &p.RequestID, &company, &p.FrameworkType, &p.PartnershipType,
		&duration, &attachments, &p.Status, &p.IsSigned, &p.SignedAt, &p.SignedBy,
		&privileges, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if err := unmarshalInto(company, &p.CompanyDetails); err != nil {
		return nil, err
	}
	if err := unmarshalInto(duration, &p.Duration); err != nil {
		return nil, err
	}
	if err := unmarshalInto(attachments, &p.ApprovalAttachments); err != nil {
		return nil, err
	}
	if err := unmarshalInto(privileges, &p.Privileges); err != nil {
		return nil, err
	}
	return p, nil
}

func marshalPartnerJSON(p *domain.Partner) (company, duration, attachments, privileges []byte, err error) {
	if company, err = json.Marshal(p.CompanyDetails); err != nil {
		return
	}
	if duration, err = json.Marshal(p.Duration); err != nil {
		return
	}
	if attachments, err = json.Marshal(p.ApprovalAttachments); err != nil {
		return
	}
	if p.Privileges != nil {
		privileges, err = json.Marshal(p.Privileges)
	}
	return
}
