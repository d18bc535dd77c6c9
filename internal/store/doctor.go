package store

import (
	"context"
	"fmt"
	"strings"

	"kanban-cli/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`

	ContainerID string `json:"containerId,omitempty"`
	ItemID      string `json:"itemId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// DoctorBoard checks the board invariants: ids are unique across containers and items and
// carry the right prefix.
func DoctorBoard(b *model.Board) DoctorReport {
	issues := []DoctorIssue{}
	seen := map[string]string{}

	claim := func(id model.ID, where string, issue DoctorIssue) {
		if prev, ok := seen[id.String()]; ok {
			issue.Level = DoctorIssueLevelError
			issue.Code = "duplicate_id"
			issue.Message = fmt.Sprintf("id %q used by %s and %s", id.String(), prev, where)
			issues = append(issues, issue)
			return
		}
		seen[id.String()] = where
	}

	for ci, c := range b.Containers {
		where := fmt.Sprintf("container #%d", ci+1)
		claim(c.ID, where, DoctorIssue{ContainerID: c.ID.String()})
		if !c.ID.IsContainer() {
			issues = append(issues, DoctorIssue{
				Level:       DoctorIssueLevelError,
				Code:        "container_id_kind",
				Message:     fmt.Sprintf("%s has id %q which does not classify as a container", where, c.ID.String()),
				ContainerID: c.ID.String(),
			})
		} else if !strings.HasPrefix(c.ID.String(), model.ContainerPrefix) {
			issues = append(issues, DoctorIssue{
				Level:       DoctorIssueLevelWarn,
				Code:        "container_id_prefix",
				Message:     fmt.Sprintf("%s id %q lacks the %q prefix", where, c.ID.String(), model.ContainerPrefix),
				ContainerID: c.ID.String(),
			})
		}
		if strings.TrimSpace(c.Title) == "" {
			issues = append(issues, DoctorIssue{
				Level:       DoctorIssueLevelWarn,
				Code:        "empty_title",
				Message:     fmt.Sprintf("%s has an empty title", where),
				ContainerID: c.ID.String(),
			})
		}

		for ii, it := range c.Items {
			itemWhere := fmt.Sprintf("item #%d of %s", ii+1, where)
			claim(it.ID, itemWhere, DoctorIssue{ContainerID: c.ID.String(), ItemID: it.ID.String()})
			if !it.ID.IsItem() {
				issues = append(issues, DoctorIssue{
					Level:       DoctorIssueLevelError,
					Code:        "item_id_kind",
					Message:     fmt.Sprintf("%s has id %q which does not classify as an item", itemWhere, it.ID.String()),
					ContainerID: c.ID.String(),
					ItemID:      it.ID.String(),
				})
			}
			if strings.TrimSpace(it.Title) == "" {
				issues = append(issues, DoctorIssue{
					Level:       DoctorIssueLevelWarn,
					Code:        "empty_title",
					Message:     fmt.Sprintf("%s has an empty title", itemWhere),
					ContainerID: c.ID.String(),
					ItemID:      it.ID.String(),
				})
			}
		}
	}
	return DoctorReport{Issues: issues}
}

// Doctor checks the stored document itself before checking the board it decodes to.
func (s Store) Doctor(ctx context.Context) (DoctorReport, error) {
	kv, err := s.Open(ctx)
	if err != nil {
		return DoctorReport{}, err
	}
	defer kv.Close()

	data, ok, err := kv.Get(ctx, DocumentKey)
	if err != nil {
		return DoctorReport{}, err
	}
	if !ok {
		return DoctorReport{Issues: []DoctorIssue{{
			Level:   DoctorIssueLevelWarn,
			Code:    "document_missing",
			Message: fmt.Sprintf("no %q document in %s (backend %s)", DocumentKey, s.Dir, s.Backend),
		}}}, nil
	}
	b, err := DecodeBoard(data)
	if err != nil {
		return DoctorReport{Issues: []DoctorIssue{{
			Level:   DoctorIssueLevelError,
			Code:    "document_malformed",
			Message: err.Error(),
		}}}, nil
	}
	return DoctorBoard(b), nil
}
