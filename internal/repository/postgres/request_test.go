package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"insa-partnership-backend/internal/apperr"
	"insa-partnership-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRequestRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		req := &domain.Request{
			SubmitterID:  50,
			Type:         domain.RequestTypeExternal,
			Status:       domain.RequestStatusPending,
			CurrentStage: domain.StagePartnershipDivision,
			CompanyDetails: domain.CompanyDetails{
				Name: "Acme Logistics",
			},
		}

		mock.ExpectQuery("INSERT INTO partnership_requests").
			WithArgs(req.SubmitterID, req.Type, req.Status, req.CurrentStage, req.FlagsSet,
				sqlmock.AnyArg(), req.PartnershipType, req.FrameworkType, sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), req.Revision, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		err := repo.Create(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), req.ID)
	})
}

func TestRequestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRequestRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now().Format(time.RFC3339)
		rows := sqlmock.NewRows([]string{"id", "submitter_id", "type", "status", "current_stage", "flags_set", "flags", "partnership_type", "framework_type", "duration", "company_details", "attachments", "approvals", "revision", "created_on", "updated_on"}).
			AddRow(1, 50, "EXTERNAL", "IN_REVIEW", "LAW_SERVICE", true,
				[]byte(`{"is_law_service_related":true,"is_law_related":true}`),
				"STRATEGIC", "MOU",
				[]byte(`{"value":2,"unit":"YEARS"}`),
				[]byte(`{"name":"Acme Logistics"}`),
				[]byte(`[]`),
				[]byte(`[{"stage":"PARTNERSHIP_DIVISION","approved_by":10,"decision":"APPROVE"}]`),
				3, now, now)

		mock.ExpectQuery("SELECT (.+) FROM partnership_requests WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		req, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.StageLawService, req.CurrentStage)
		assert.True(t, req.Flags.IsLawRelated)
		assert.Equal(t, domain.Duration{Value: 2, Unit: domain.DurationUnitYears}, req.Duration)
		assert.Equal(t, "Acme Logistics", req.CompanyDetails.Name)
		assert.Len(t, req.Approvals, 1)
		assert.Equal(t, int32(3), req.Revision)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM partnership_requests WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestRequestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRequestRepository(db)
	ctx := context.Background()

	req := &domain.Request{
		ID:           1,
		Status:       domain.RequestStatusInReview,
		CurrentStage: domain.StageDirector,
		Revision:     4,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE partnership_requests").
			WithArgs(req.Status, req.CurrentStage, req.FlagsSet, sqlmock.AnyArg(), req.PartnershipType,
				req.FrameworkType, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), req.ID, int32(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), req.Revision)
	})

	t.Run("StaleRevisionConflicts", func(t *testing.T) {
		mock.ExpectExec("UPDATE partnership_requests").
			WithArgs(req.Status, req.CurrentStage, req.FlagsSet, sqlmock.AnyArg(), req.PartnershipType,
				req.FrameworkType, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), req.ID, int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, req)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
		// Revision stays at what the caller read.
		assert.Equal(t, int32(5), req.Revision)
	})
}

func TestRequestRepository_ApproveAndPromote(t *testing.T) {
	ctx := context.Background()

	approvedRequest := func() *domain.Request {
		return &domain.Request{
			ID:           1,
			Status:       domain.RequestStatusApproved,
			CurrentStage: domain.StageGeneralDirector,
			Revision:     4,
		}
	}
	newPartner := func() *domain.Partner {
		return &domain.Partner{
			RequestID:       1,
			CompanyDetails:  domain.CompanyDetails{Name: "Acme"},
			PartnershipType: domain.PartnershipTypeStrategic,
			Duration:        domain.Duration{Value: 2, Unit: domain.DurationUnitYears},
			Status:          domain.PartnerStatusActive,
		}
	}

	t.Run("CommitsBothWrites", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewRequestRepository(db)

		req, partner := approvedRequest(), newPartner()
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE partnership_requests").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO partners").
			WithArgs(partner.RequestID, sqlmock.AnyArg(), partner.FrameworkType, partner.PartnershipType,
				sqlmock.AnyArg(), sqlmock.AnyArg(), partner.Status, partner.IsSigned, nil, nil,
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
		mock.ExpectCommit()

		assert.NoError(t, repo.ApproveAndPromote(ctx, req, partner))
		assert.Equal(t, int32(9), partner.ID)
		assert.Equal(t, int32(5), req.Revision)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FailedPartnerInsertRollsBackApproval", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewRequestRepository(db)

		req, partner := approvedRequest(), newPartner()
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE partnership_requests").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO partners").
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err = repo.ApproveAndPromote(ctx, req, partner)
		assert.Error(t, err)
		// The caller's revision is untouched, so a retry re-reads and wins.
		assert.Equal(t, int32(4), req.Revision)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StaleRevisionConflicts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewRequestRepository(db)

		req, partner := approvedRequest(), newPartner()
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE partnership_requests").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.ApproveAndPromote(ctx, req, partner)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
		assert.Equal(t, int32(4), req.Revision)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicatePartnerConflicts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewRequestRepository(db)

		req, partner := approvedRequest(), newPartner()
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE partnership_requests").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO partners").
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err = repo.ApproveAndPromote(ctx, req, partner)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRequestRepository_ListByStage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRequestRepository(db)
	ctx := context.Background()

	now := time.Now().Format(time.RFC3339)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM partnership_requests").
		WithArgs(domain.StageDirector).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM partnership_requests WHERE current_stage = \\$1").
		WithArgs(domain.StageDirector, int32(10), int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "submitter_id", "type", "status", "current_stage", "flags_set", "flags", "partnership_type", "framework_type", "duration", "company_details", "attachments", "approvals", "revision", "created_on", "updated_on"}).
			AddRow(1, 50, "INTERNAL", "IN_REVIEW", "DIRECTOR", true,
				[]byte(`{"for_director":true}`), "", "", []byte(`{"value":1,"unit":"YEARS"}`),
				[]byte(`{"name":"Acme"}`), []byte(`[]`), []byte(`[]`), 2, now, now))

	reqs, total, err := repo.ListByStage(ctx, domain.StageDirector, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, reqs, 1)
	assert.Equal(t, domain.StageDirector, reqs[0].CurrentStage)
}
