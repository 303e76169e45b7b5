package repository

import (
	"context"
	"errors"
	"time"

	"github.com/WooodHead/everpost-backend/internal/auth/domain"
	commondb "github.com/WooodHead/everpost-backend/internal/common/db"
)

var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrCredentialExists   = errors.New("credential already exists for user")
)

type CredentialRepository interface {
	Create(ctx context.Context, userID int64, passwordHash string) (domain.CredentialID, error)
	FindByUserID(ctx context.Context, userID int64) (domain.Credential, error)
}

type PgCredentialRepository struct {
	db commondb.DBTX
}

func NewPgCredentialRepository(db commondb.DBTX) *PgCredentialRepository {
	return &PgCredentialRepository{db: db}
}

func (r *PgCredentialRepository) Create(ctx context.Context, userID int64, passwordHash string) (domain.CredentialID, error) {
	start := time.Now()
	var id domain.CredentialID
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO password_credentials (user_id, password_hash) VALUES ($1, $2) RETURNING id`,
		userID,
		passwordHash,
	).Scan(&id)
	if err != nil {
		if commondb.IsUniqueViolation(err) {
			commondb.MeasureQueryDuration("create credential", start)
			return 0, ErrCredentialExists
		}
		return 0, commondb.HandleExecError(err, "create credential", start)
	}
	commondb.MeasureQueryDuration("create credential", start)
	return id, nil
}

func (r *PgCredentialRepository) FindByUserID(ctx context.Context, userID int64) (domain.Credential, error) {
	start := time.Now()
	var cred domain.Credential
	err := r.db.QueryRow(
		ctx,
		`SELECT id, user_id, password_hash, created_at FROM password_credentials WHERE user_id = $1`,
		userID,
	).Scan(&cred.ID, &cred.UserID, &cred.PasswordHash, &cred.CreatedAt)
	if err != nil {
		return domain.Credential{}, commondb.HandleQueryError(err, ErrCredentialNotFound, "find credential by user", start)
	}
	commondb.MeasureQueryDuration("find credential by user", start)
	return cred, nil
}
