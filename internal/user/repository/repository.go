package repository

import (
	"context"
	"errors"
	"time"

	commondb "github.com/WooodHead/everpost-backend/internal/common/db"
	commonerrors "github.com/WooodHead/everpost-backend/internal/common/errors"
	"github.com/WooodHead/everpost-backend/internal/user/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = commonerrors.ErrEmailAlreadyExists
)

type Repository interface {
	Create(ctx context.Context, email, username string) (domain.User, error)
	FindByID(ctx context.Context, id int64) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, id int64, update domain.ProfileUpdate) (domain.User, error)
	Delete(ctx context.Context, id int64) error
	DeleteOrphans(ctx context.Context, createdBefore time.Time) (int64, error)
}

const userColumns = `id, email, username, profile_image, created_at, updated_at`

type PgRepository struct {
	db commondb.DBTX
}

func NewPgRepository(db commondb.DBTX) *PgRepository {
	return &PgRepository{db: db}
}

func (r *PgRepository) Create(ctx context.Context, email, username string) (domain.User, error) {
	start := time.Now()
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO users (email, username) VALUES ($1, $2) RETURNING `+userColumns,
		email,
		username,
	)

	user, err := scanUser(row)
	if err != nil {
		if commondb.IsUniqueViolation(err) {
			commondb.MeasureQueryDuration("create user", start)
			return domain.User{}, ErrEmailAlreadyExists
		}
		return domain.User{}, commondb.HandleExecError(err, "create user", start)
	}
	commondb.MeasureQueryDuration("create user", start)
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	start := time.Now()
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		return domain.User{}, commondb.HandleQueryError(err, ErrUserNotFound, "find user by id", start)
	}
	commondb.MeasureQueryDuration("find user by id", start)
	return user, nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		return domain.User{}, commondb.HandleQueryError(err, ErrUserNotFound, "find user by email", start)
	}
	commondb.MeasureQueryDuration("find user by email", start)
	return user, nil
}

func (r *PgRepository) Update(ctx context.Context, id int64, update domain.ProfileUpdate) (domain.User, error) {
	start := time.Now()
	row := r.db.QueryRow(
		ctx,
		`UPDATE users
		 SET username = COALESCE($2, username),
		     email = COALESCE($3, email),
		     profile_image = COALESCE($4, profile_image),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id,
		update.Username,
		update.Email,
		update.ProfileImage,
	)

	user, err := scanUser(row)
	if err != nil {
		if commondb.IsUniqueViolation(err) {
			commondb.MeasureQueryDuration("update user", start)
			return domain.User{}, ErrEmailAlreadyExists
		}
		return domain.User{}, commondb.HandleQueryError(err, ErrUserNotFound, "update user", start)
	}
	commondb.MeasureQueryDuration("update user", start)
	return user, nil
}

func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err := commondb.HandleExecError(err, "delete user", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteOrphans removes users that never got a credential. The cutoff keeps
// rows that may still belong to an in-flight registration.
func (r *PgRepository) DeleteOrphans(ctx context.Context, createdBefore time.Time) (int64, error) {
	start := time.Now()
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM users u
		 WHERE u.created_at < $1
		   AND NOT EXISTS (SELECT 1 FROM password_credentials c WHERE c.user_id = u.id)`,
		createdBefore,
	)
	if err := commondb.HandleExecError(err, "delete orphan users", start); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.ProfileImage,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}
