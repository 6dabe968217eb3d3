package assistantRepository

import (
	"fineo-backend/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Page:     &pageRepository{q: sqlExecutor, log: r.log},
		Command:  &commandRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Page interface {
		GetActivePages(c context.Context) ([]entity.NavigationPage, error)
		GetPageByPath(c context.Context, path string) (entity.NavigationPage, error)
		CreatePage(c context.Context, page entity.NavigationPage) error
		UpdatePage(c context.Context, page entity.NavigationPage) error
	}

	Command interface {
		CreateCommand(c context.Context, command entity.AssistantCommand) error
		GetCommandsByUserID(c context.Context, userID string, limit int) ([]entity.AssistantCommand, error)
		CountCommandsByUserID(c context.Context, userID string) (int, error)
	}

	Commit   func() error
	Rollback func() error
}

type pageRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type commandRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
