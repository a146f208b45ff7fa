package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"modaville/internal/domain"
	"modaville/internal/repos"
	"modaville/internal/tasks"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type AuditService struct {
	Repo  *repos.AuditRepo
	Tasks *tasks.Runner
}

func NewAuditService(repo *repos.AuditRepo, runner *tasks.Runner) *AuditService {
	return &AuditService{Repo: repo, Tasks: runner}
}

// sensitive request fields never reach the audit store.
var sensitiveFields = []string{"password", "passwordConfirm", "oldPassword", "newPassword"}

// StripSensitive removes credential fields from a JSON request body. A
// body that is not a JSON object passes through untouched.
func StripSensitive(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return string(body)
	}
	for _, f := range sensitiveFields {
		delete(m, f)
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}

// Record queues the entry; audit persistence is never awaited by, and
// never fails, the request that produced it.
func (s *AuditService) Record(e domain.AuditLog) {
	e.ID = uuid.NewString()
	s.Tasks.Enqueue("audit.write "+e.Action, func() error {
		return s.Repo.Insert(&e)
	})
}

func (s *AuditService) List(f repos.AuditFilter) ([]domain.AuditLog, error) {
	return s.Repo.List(f)
}

// ExportXLSX renders the filtered audit trail as a spreadsheet.
func (s *AuditService) ExportXLSX(f repos.AuditFilter) ([]byte, error) {
	entries, err := s.Repo.List(f)
	if err != nil {
		return nil, err
	}

	x := excelize.NewFile()
	defer func() { _ = x.Close() }()

	const sheet = "AuditLogs"
	idx, err := x.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	x.SetActiveSheet(idx)
	_ = x.DeleteSheet("Sheet1")

	headers := []string{"ID", "Actor", "Email", "Action", "Resource", "ResourceID", "Method", "Path", "Status", "Detail", "CreatedAt"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = x.SetCellValue(sheet, cell, h)
	}
	for row, e := range entries {
		vals := []any{e.ID, e.ActorID, e.ActorEmail, e.Action, e.ResourceType, e.ResourceID, e.Method, e.Path, e.StatusCode, e.DetailJSON, e.CreatedAt}
		for col, v := range vals {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = x.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := x.Write(&buf); err != nil {
		return nil, fmt.Errorf("write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
