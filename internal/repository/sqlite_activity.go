package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sayanitariq-techno/Tariq/internal/db"
	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// activityColumns is the canonical SELECT column list for activities.
const activityColumns = `id, package_id, title, tag, priority, assignee, status,
		deadline, planned_end_date, start_time, end_time, remark, status_updated_at`

// SQLiteActivityRepo implements ActivityRepo. Hold events live in their own
// table keyed by (activity_id, seq) and are rewritten on every upsert.
type SQLiteActivityRepo struct {
	db db.DBTX
}

func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

func (r *SQLiteActivityRepo) Upsert(ctx context.Context, a domain.Activity) error {
	query := `INSERT INTO activities (` + activityColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			package_id = excluded.package_id,
			title = excluded.title,
			tag = excluded.tag,
			priority = excluded.priority,
			assignee = excluded.assignee,
			status = excluded.status,
			deadline = excluded.deadline,
			planned_end_date = excluded.planned_end_date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			remark = excluded.remark,
			status_updated_at = excluded.status_updated_at,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.PackageID,
		a.Title,
		a.Tag,
		string(a.Priority),
		a.Assignee,
		string(a.Status),
		formatTime(a.Deadline),
		formatTime(a.PlannedEndDate),
		nullableTimeToString(a.StartTime),
		nullableTimeToString(a.EndTime),
		a.Remark,
		nullableTimeToString(a.StatusUpdatedAt),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting activity: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM hold_events WHERE activity_id = ?`, a.ID); err != nil {
		return fmt.Errorf("clearing hold events: %w", err)
	}
	for i, h := range a.HoldHistory {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO hold_events (activity_id, seq, reason, remarks, start_time, end_time) VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, i, h.Reason, h.Remarks, formatTime(h.StartTime), nullableTimeToString(h.EndTime),
		)
		if err != nil {
			return fmt.Errorf("inserting hold event %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (domain.Activity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Activity{}, fmt.Errorf("activity %q: %w", id, domain.ErrNotFound)
		}
		return domain.Activity{}, err
	}
	holds, err := r.holdsWhere(ctx, `WHERE activity_id = ?`, id)
	if err != nil {
		return domain.Activity{}, err
	}
	a.HoldHistory = holds[id]
	return a, nil
}

func (r *SQLiteActivityRepo) List(ctx context.Context) ([]domain.Activity, error) {
	acts, err := r.query(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY package_id, tag, deadline, id`)
	if err != nil {
		return nil, err
	}
	holds, err := r.holdsWhere(ctx, "")
	if err != nil {
		return nil, err
	}
	attachHolds(acts, holds)
	return acts, nil
}

func (r *SQLiteActivityRepo) ListByPackage(ctx context.Context, packageID string) ([]domain.Activity, error) {
	acts, err := r.query(ctx, `SELECT `+activityColumns+` FROM activities WHERE package_id = ?
		ORDER BY tag, deadline, id`, packageID)
	if err != nil {
		return nil, err
	}
	holds, err := r.holdsWhere(ctx,
		`WHERE activity_id IN (SELECT id FROM activities WHERE package_id = ?)`, packageID)
	if err != nil {
		return nil, err
	}
	attachHolds(acts, holds)
	return acts, nil
}

func (r *SQLiteActivityRepo) ListIDs(ctx context.Context) ([]string, error) {
	return listIDs(ctx, r.db, `SELECT id FROM activities`, "activity")
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return nil
}

// query drains the result set before returning so a single-connection pool
// is free for the follow-up hold query.
func (r *SQLiteActivityRepo) query(ctx context.Context, query string, args ...any) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var acts []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return acts, nil
}

func (r *SQLiteActivityRepo) holdsWhere(ctx context.Context, where string, args ...any) (map[string][]domain.HoldEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT activity_id, reason, remarks, start_time, end_time FROM hold_events `+where+` ORDER BY activity_id, seq`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("listing hold events: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.HoldEvent)
	for rows.Next() {
		var activityID, start string
		var end sql.NullString
		var h domain.HoldEvent
		if err := rows.Scan(&activityID, &h.Reason, &h.Remarks, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning hold event: %w", err)
		}
		if h.StartTime, err = parseTime("hold start_time", start); err != nil {
			return nil, err
		}
		h.EndTime = parseNullableTime(end)
		out[activityID] = append(out[activityID], h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hold events: %w", err)
	}
	return out, nil
}

func attachHolds(acts []domain.Activity, holds map[string][]domain.HoldEvent) {
	for i := range acts {
		acts[i].HoldHistory = holds[acts[i].ID]
	}
}

func scanActivity(row scanner) (domain.Activity, error) {
	var a domain.Activity
	var priority, status, deadline, plannedEnd string
	var start, end, statusUpdated sql.NullString

	err := row.Scan(
		&a.ID, &a.PackageID, &a.Title, &a.Tag, &priority, &a.Assignee, &status,
		&deadline, &plannedEnd, &start, &end, &a.Remark, &statusUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, err
		}
		return a, fmt.Errorf("scanning activity: %w", err)
	}

	a.Priority = domain.Priority(priority)
	a.Status = domain.ActivityStatus(status)
	if a.Deadline, err = parseTime("deadline", deadline); err != nil {
		return a, err
	}
	if a.PlannedEndDate, err = parseTime("planned_end_date", plannedEnd); err != nil {
		return a, err
	}
	a.StartTime = parseNullableTime(start)
	a.EndTime = parseNullableTime(end)
	a.StatusUpdatedAt = parseNullableTime(statusUpdated)
	return a, nil
}
