package postgres

import (
	"database/sql"
	"errors"

	"insa-partnership-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RequestRepository
	repository.PartnerRepository
	repository.ActivityRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		RequestRepository:  NewRequestRepository(db),
		PartnerRepository:  NewPartnerRepository(db),
		ActivityRepository: NewActivityRepository(db),
		UserRepository:     NewUserRepository(db),
	}
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
