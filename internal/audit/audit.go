// Package audit records dispatched actions for diagnostics.
package audit

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/database"
	"github.com/akshatworkmail12-bit/jarvis/internal/models"
)

// Service writes and reads the audit trail. Write failures are logged and
// swallowed; auditing must never fail a request.
type Service struct {
	db  *database.DB
	log *zap.SugaredLogger
}

// NewService creates the audit service.
func NewService(db *database.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// LogAction records one dispatched command and its result.
func (s *Service) LogAction(requestID, clientIP, command string, result *models.ActionResult) {
	_, err := s.db.Exec(`
		INSERT INTO audit_entries (id, request_id, client_ip, command, action, success, response, execution_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), requestID, clientIP, command,
		result.Action, result.Success, result.Response, result.ExecutionTime)
	if err != nil {
		s.log.Warnw("audit write failed", "error", err)
	}
}

// Recent returns the latest entries, newest first.
func (s *Service) Recent(limit int) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, request_id, client_ip, command, action, success, response, execution_time, created_at
		FROM audit_entries
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.RequestID, &e.ClientIP, &e.Command,
			&e.Action, &e.Success, &e.Response, &e.ExecutionTime, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
