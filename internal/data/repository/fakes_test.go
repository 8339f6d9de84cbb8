package repository

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"

	"paramount-autos/internal/data/entity"
	"paramount-autos/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRow scans fixed values into the destinations, or fails with err.
type fakeRow struct {
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("fakeRow: column count mismatch")
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if r.values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func bookingRow(b *entity.Booking) *fakeRow {
	vehiclesJSON, _ := json.Marshal(b.Vehicles)
	var securityJSON []byte
	if b.SecurityPersonnel != nil {
		securityJSON, _ = json.Marshal(b.SecurityPersonnel)
	}
	return &fakeRow{values: []any{
		b.ID,
		b.RefNumber,
		b.CustomerName,
		b.Phone,
		b.Email,
		b.PickupLocation,
		b.DropoffLocation,
		b.StartDate,
		b.EndDate,
		b.RentalDays,
		vehiclesJSON,
		securityJSON,
		b.TotalAmount,
		b.Status,
		b.PaymentStatus,
		b.Notes,
		b.CreatedAt,
		b.UpdatedAt,
	}}
}

// fakeTx records the statements issued inside a transaction. Methods the
// repositories never call fall through to the nil embedded interface.
type fakeTx struct {
	pgx.Tx
	row        pgx.Row
	execErr    error
	commitErr  error
	execs      []string
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return tx.row
}

func (tx *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	tx.execs = append(tx.execs, sql)
	if tx.execErr != nil {
		return pgconn.CommandTag{}, tx.execErr
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (tx *fakeTx) Commit(_ context.Context) error {
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(_ context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

// fakeDB stands in for the pool.
type fakeDB struct {
	tx       *fakeTx
	beginErr error
	execErr  error
	execs    []string
}

var _ database.PgxIface = (*fakeDB)(nil)

func (db *fakeDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("fakeDB: query not supported")
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return &fakeRow{err: pgx.ErrNoRows}
}

func (db *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	db.execs = append(db.execs, sql)
	if db.execErr != nil {
		return pgconn.CommandTag{}, db.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (db *fakeDB) Begin(_ context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return db.tx, nil
}

func (db *fakeDB) Ping(_ context.Context) error { return nil }

func (db *fakeDB) Close() {}
