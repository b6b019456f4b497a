package postgres

import (
	"context"
	"testing"
	"time"

	"insa-partnership-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPartnerRepository_GetByRequestID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPartnerRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		now := time.Now().Format(time.RFC3339)
		rows := sqlmock.NewRows([]string{"id", "request_id", "company_details", "framework_type", "partnership_type", "duration", "approval_attachments", "status", "is_signed", "signed_at", "signed_by", "privileges", "created_on", "updated_on"}).
			AddRow(9, 1, []byte(`{"name":"Acme"}`), "MOU", "OPERATIONAL",
				[]byte(`{"value":2,"unit":"YEARS"}`), []byte(`[]`), "ACTIVE", false, nil, nil,
				[]byte(`{"DIRECTOR":false}`), now, now)

		mock.ExpectQuery("SELECT (.+) FROM partners WHERE request_id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		p, err := repo.GetByRequestID(ctx, 1)
		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, int32(9), p.ID)
		assert.False(t, p.Privileges["DIRECTOR"])
	})

	t.Run("AbsentIsNilNotError", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM partners WHERE request_id = \\$1").
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		p, err := repo.GetByRequestID(ctx, 42)
		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestPartnerRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPartnerRepository(db)
	ctx := context.Background()

	signedAt := time.Now()
	signedBy := int32(20)
	partner := &domain.Partner{
		ID:       9,
		Status:   domain.PartnerStatusActive,
		IsSigned: true,
		SignedAt: &signedAt,
		SignedBy: &signedBy,
	}

	mock.ExpectExec("UPDATE partners SET").
		WithArgs(partner.Status, partner.IsSigned, partner.SignedAt, partner.SignedBy,
			sqlmock.AnyArg(), sqlmock.AnyArg(), partner.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(ctx, partner))
}

func TestPartnerRepository_ListVisibleTo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPartnerRepository(db)
	ctx := context.Background()

	// Both the count and the page share the visibility predicate, so the
	// total reflects the whole filtered set rather than the returned page.
	now := time.Now().Format(time.RFC3339)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM partners WHERE partnership_type").
		WithArgs(domain.StageDirector).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT (.+) FROM partners WHERE partnership_type").
		WithArgs(domain.StageDirector, int32(2), int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_id", "company_details", "framework_type", "partnership_type", "duration", "approval_attachments", "status", "is_signed", "signed_at", "signed_by", "privileges", "created_on", "updated_on"}).
			AddRow(1, 1, []byte(`{"name":"Acme"}`), "", "STRATEGIC",
				[]byte(`{"value":1,"unit":"YEARS"}`), []byte(`[]`), "ACTIVE", false, nil, nil, nil, now, now).
			AddRow(3, 3, []byte(`{"name":"Orbit Ltd"}`), "", "OPERATIONAL",
				[]byte(`{"value":2,"unit":"YEARS"}`), []byte(`[]`), "ACTIVE", false, nil, nil,
				[]byte(`{"DIRECTOR":true}`), now, now))

	partners, total, err := repo.ListVisibleTo(ctx, domain.StageDirector, 1, 2)
	assert.NoError(t, err)
	assert.Len(t, partners, 2)
	assert.Equal(t, int32(12), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
