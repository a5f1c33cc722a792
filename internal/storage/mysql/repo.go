package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"drivent/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL, h.ID, h.Name, h.Image)
	return err
}

// ReplaceRooms runs in one transaction: rooms missing from the new set are
// deleted, the rest are upserted under hotelID.
func (r *Repo) ReplaceRooms(ctx context.Context, hotelID int64, rooms []domain.Room) (moved []int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ids := make([]any, 0, len(rooms))
	for _, rm := range rooms {
		ids = append(ids, rm.ID)
	}
	in := "(" + strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",") + ")"

	if len(ids) > 0 {
		moved, err = r.roomOwners(ctx, tx, hotelID, in, ids)
		if err != nil {
			return nil, err
		}
	}

	del, delArgs := deleteRoomsSQL, []any{hotelID}
	if len(ids) > 0 {
		del += " AND id NOT IN " + in
		delArgs = append(delArgs, ids...)
	}
	if _, err = tx.ExecContext(ctx, del, delArgs...); err != nil {
		return nil, err
	}

	if len(rooms) > 0 {
		values := make([]string, 0, len(rooms))
		args := make([]any, 0, len(rooms)*4) // 4 params per row
		for _, rm := range rooms {
			values = append(values, "(?,?,?,?)")
			args = append(args, rm.ID, rm.Name, rm.Capacity, hotelID)
		}
		sqlStr := insertRoomsPrefix + strings.Join(values, ",") + insertRoomsOnDup
		if _, err = tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return moved, nil
}

func (r *Repo) roomOwners(ctx context.Context, tx *sql.Tx, hotelID int64, in string, ids []any) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, roomOwnersPrefix+in, append([]any{hotelID}, ids...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		owners = append(owners, id)
	}
	return owners, rows.Err()
}

func (r *Repo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

func (r *Repo) FindAllHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, findAllHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) FindHotelWithRooms(ctx context.Context, id int64) (domain.Hotel, error) {
	var h domain.Hotel
	err := r.db.QueryRowContext(ctx, findHotelSQL, id).
		Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Hotel{}, err
	}

	rows, err := r.db.QueryContext(ctx, findRoomsByHotelSQL, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	defer rows.Close()

	h.Rooms = []domain.Room{}
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return domain.Hotel{}, err
		}
		h.Rooms = append(h.Rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}
