package assistantRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fineo-backend/internal/api/assistant"
	"fineo-backend/internal/entity"
	contextPkg "fineo-backend/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type NavigationPageDB struct {
	Name        sql.NullString `db:"name"`
	Path        sql.NullString `db:"path"`
	Description sql.NullString `db:"description"`
	Category    sql.NullString `db:"category"`
	Keywords    pq.StringArray `db:"keywords"`
	Aliases     pq.StringArray `db:"aliases"`
	IsActive    sql.NullBool   `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *pageRepository) GetActivePages(c context.Context) ([]entity.NavigationPage, error) {
	requestID := contextPkg.GetRequestID(c)
	var pages []NavigationPageDB

	query := r.q.Rebind(queryGetActivePages)

	if err := r.q.SelectContext(c, &pages, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetActivePages execution err")
		return nil, err
	}

	result := make([]entity.NavigationPage, 0, len(pages))
	for _, page := range pages {
		result = append(result, r.makeNavigationPage(page))
	}

	return result, nil
}

func (r *pageRepository) GetPageByPath(c context.Context, path string) (entity.NavigationPage, error) {
	requestID := contextPkg.GetRequestID(c)
	var page NavigationPageDB

	argsKV := map[string]interface{}{
		"path": path,
	}

	query, args, err := sqlx.Named(queryGetPageByPath, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPageByPath named query preparation err")
		return entity.NavigationPage{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&page); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"path":       path,
			}).Warn("GetPageByPath no rows found")
			return entity.NavigationPage{}, assistant.ErrPageNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPageByPath execution err")
		return entity.NavigationPage{}, err
	}

	return r.makeNavigationPage(page), nil
}

func (r *pageRepository) CreatePage(c context.Context, page entity.NavigationPage) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"name":        page.Name,
		"path":        page.Path,
		"description": page.Description,
		"category":    page.Category,
		"keywords":    pq.StringArray(page.Keywords),
		"aliases":     pq.StringArray(page.Aliases),
		"is_active":   page.IsActive,
		"created_at":  time.Now(),
		"updated_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryCreatePage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreatePage")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating navigation page")
		return err
	}

	return nil
}

func (r *pageRepository) UpdatePage(c context.Context, page entity.NavigationPage) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"name":        page.Name,
		"path":        page.Path,
		"description": page.Description,
		"category":    page.Category,
		"keywords":    pq.StringArray(page.Keywords),
		"aliases":     pq.StringArray(page.Aliases),
		"is_active":   page.IsActive,
		"updated_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdatePage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdatePage")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating navigation page")
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return assistant.ErrPageNotFound
	}

	return nil
}

func (r *pageRepository) makeNavigationPage(page NavigationPageDB) entity.NavigationPage {
	return entity.NavigationPage{
		Name:        page.Name.String,
		Path:        page.Path.String,
		Description: page.Description.String,
		Category:    page.Category.String,
		Keywords:    []string(page.Keywords),
		Aliases:     []string(page.Aliases),
		IsActive:    page.IsActive.Bool,
		CreatedAt:   page.CreatedAt,
		UpdatedAt:   page.UpdatedAt,
	}
}
