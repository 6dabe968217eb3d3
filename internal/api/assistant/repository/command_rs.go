package assistantRepository

import (
	"context"
	"database/sql"
	"time"

	"fineo-backend/internal/entity"
	contextPkg "fineo-backend/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type AssistantCommandDB struct {
	ID         sql.NullString  `db:"id"`
	UserID     sql.NullString  `db:"user_id"`
	Input      sql.NullString  `db:"input"`
	Intent     sql.NullString  `db:"intent"`
	Confidence sql.NullFloat64 `db:"confidence"`
	Target     sql.NullString  `db:"target"`
	Year       sql.NullInt64   `db:"year"`
	Response   sql.NullString  `db:"response"`
	CreatedAt  time.Time       `db:"created_at"`
}

func (r *commandRepository) CreateCommand(c context.Context, command entity.AssistantCommand) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         command.ID,
		"user_id":    command.UserID,
		"input":      command.Input,
		"intent":     command.Intent,
		"confidence": command.Confidence,
		"target":     command.Target,
		"year":       command.Year,
		"response":   command.Response,
		"created_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateCommand, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCommand")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating assistant command")
		return err
	}

	return nil
}

func (r *commandRepository) GetCommandsByUserID(c context.Context, userID string, limit int) ([]entity.AssistantCommand, error) {
	requestID := contextPkg.GetRequestID(c)
	var commands []AssistantCommandDB

	argsKV := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	}

	query, args, err := sqlx.Named(queryGetCommandsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandsByUserID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &commands, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandsByUserID execution err")
		return nil, err
	}

	result := make([]entity.AssistantCommand, 0, len(commands))
	for _, command := range commands {
		result = append(result, r.makeAssistantCommand(command))
	}

	return result, nil
}

func (r *commandRepository) CountCommandsByUserID(c context.Context, userID string) (int, error) {
	requestID := contextPkg.GetRequestID(c)
	var total int

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryCountCommandsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountCommandsByUserID named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountCommandsByUserID execution err")
		return 0, err
	}

	return total, nil
}

func (r *commandRepository) makeAssistantCommand(command AssistantCommandDB) entity.AssistantCommand {
	return entity.AssistantCommand{
		ID:         command.ID.String,
		UserID:     command.UserID.String,
		Input:      command.Input.String,
		Intent:     command.Intent.String,
		Confidence: command.Confidence.Float64,
		Target:     command.Target.String,
		Year:       int(command.Year.Int64),
		Response:   command.Response.String,
		CreatedAt:  command.CreatedAt,
	}
}
