package repository

import (
	"context"

	pgx "github.com/jackc/pgx/v4"

	"github.com/WooodHead/everpost-backend/internal/common/constants"
	commondb "github.com/WooodHead/everpost-backend/internal/common/db"
	userrepo "github.com/WooodHead/everpost-backend/internal/user/repository"
)

// AccountTx exposes the stores that take part in account creation, bound to
// one database transaction.
type AccountTx interface {
	Users() userrepo.Repository
	Credentials() CredentialRepository
}

type AccountTxManager interface {
	WithTx(ctx context.Context, fn func(context.Context, AccountTx) error) error
}

type pgAccountTx struct {
	users       *userrepo.PgRepository
	credentials *PgCredentialRepository
}

func (t *pgAccountTx) Users() userrepo.Repository {
	return t.users
}

func (t *pgAccountTx) Credentials() CredentialRepository {
	return t.credentials
}

type PgAccountTxManager struct {
	db commondb.TxBeginner
}

func NewPgAccountTxManager(db commondb.TxBeginner) *PgAccountTxManager {
	return &PgAccountTxManager{db: db}
}

// WithTx commits when fn returns nil and rolls back on error or panic.
func (m *PgAccountTxManager) WithTx(ctx context.Context, fn func(context.Context, AccountTx) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}

	accountTx := newPgAccountTx(tx)
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(ctx, accountTx)
	return err
}

func newPgAccountTx(tx pgx.Tx) *pgAccountTx {
	return &pgAccountTx{
		users:       userrepo.NewPgRepository(tx),
		credentials: NewPgCredentialRepository(tx),
	}
}
