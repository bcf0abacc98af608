package pgroute

import (
	"context"
	"encoding/json"

	"github.com/BearBump/RouteBox/internal/models"
	"github.com/pkg/errors"
)

// AppendHistory inserts one history row. Rows are never updated; the table
// has a trigger rejecting UPDATE and DELETE.
func (s *Storage) AppendHistory(ctx context.Context, h *models.RouteHistory) error {
	var changes []byte
	if len(h.Changes) > 0 {
		b, err := json.Marshal(h.Changes)
		if err != nil {
			return errors.Wrap(err, "marshal history changes")
		}
		changes = b
	}

	_, err := s.conn(ctx).Exec(ctx, `
INSERT INTO route_history (
  id, route_id, event_type, description, previous_status, new_status, changes,
  user_id, user_name, user_type, request_id, ip_address, created_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`,
		h.ID, h.RouteID, string(h.EventType), h.Description, statusArg(h.PreviousStatus), statusArg(h.NewStatus), changes,
		h.UserID, h.UserName, h.UserType, h.RequestID, h.IPAddress, h.CreatedAt.UTC(),
	)
	return mapErr(errors.Wrap(err, "insert route history"))
}

// ListHistory returns entries oldest first.
func (s *Storage) ListHistory(ctx context.Context, routeID string, limit, offset int) ([]*models.RouteHistory, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.conn(ctx).Query(ctx, `
SELECT
  id, route_id, event_type, description, previous_status, new_status, changes,
  user_id, user_name, user_type, request_id, ip_address, created_at
FROM route_history
WHERE route_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2 OFFSET $3
`, routeID, limit, offset)
	if err != nil {
		return nil, mapErr(errors.Wrap(err, "select route history"))
	}
	defer rows.Close()

	var out []*models.RouteHistory
	for rows.Next() {
		var h models.RouteHistory
		var prev, next *string
		var changes []byte
		if err := rows.Scan(
			&h.ID, &h.RouteID, &h.EventType, &h.Description, &prev, &next, &changes,
			&h.UserID, &h.UserName, &h.UserType, &h.RequestID, &h.IPAddress, &h.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan route history")
		}
		h.PreviousStatus = statusPtr(prev)
		h.NewStatus = statusPtr(next)
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &h.Changes); err != nil {
				return nil, errors.Wrap(err, "unmarshal history changes")
			}
		}
		out = append(out, &h)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func statusArg(s *models.RouteStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func statusPtr(s *string) *models.RouteStatus {
	if s == nil {
		return nil
	}
	v := models.RouteStatus(*s)
	return &v
}
