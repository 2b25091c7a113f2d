package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) Append(ctx context.Context, data EventData) (int64, error) {
	if !data.Kind.Valid() {
		return 0, fmt.Errorf("append event: unknown kind %q", data.Kind)
	}
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var seq int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO events (ts, kind, slot, session_id, challenge_id, detail)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING sequence`,
		ts.UnixMilli(), string(data.Kind), data.Slot,
		data.SessionID, data.ChallengeID, data.Detail,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("save %s event: %w", data.Kind, err)
	}
	return seq, nil
}

func (r *eventRepo) Query(ctx context.Context, opts QueryOpts) ([]Event, error) {
	var (
		where []string
		args  []any
	)
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		where = append(where, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		where = append(where, "ts >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "ts <= ?")
		args = append(args, opts.To.UnixMilli())
	}
	if opts.Slot > 0 {
		where = append(where, "slot = ?")
		args = append(args, opts.Slot)
	}
	if len(opts.Kinds) > 0 {
		marks := make([]string, len(opts.Kinds))
		for i, k := range opts.Kinds {
			marks[i] = "?"
			args = append(args, string(k))
		}
		where = append(where, "kind IN ("+strings.Join(marks, ", ")+")")
	}

	var q strings.Builder
	q.WriteString(`SELECT sequence, ts, kind, slot, session_id, challenge_id, detail FROM events`)
	if len(where) > 0 {
		q.WriteString(" WHERE ")
		q.WriteString(strings.Join(where, " AND "))
	}
	if opts.Newest {
		q.WriteString(" ORDER BY sequence DESC")
	} else {
		q.WriteString(" ORDER BY sequence ASC")
	}
	if opts.Limit > 0 {
		q.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			ev   Event
			ms   int64
			kind string
		)
		if err := rows.Scan(&ev.Sequence, &ms, &kind, &ev.Slot, &ev.SessionID, &ev.ChallengeID, &ev.Detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ms)
		ev.Kind = Kind(kind)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) CountByKind(ctx context.Context, slot int) (map[Kind]int, error) {
	q := `SELECT kind, COUNT(*) FROM events`
	var args []any
	if slot > 0 {
		q += ` WHERE slot = ?`
		args = append(args, slot)
	}
	q += ` GROUP BY kind`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[Kind]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[Kind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}
