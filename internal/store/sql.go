package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/a3tai/ncrp-intake/internal/complaint"
)

const insertComplaint = `INSERT INTO complaints (
	csr_no, ack_no, category, sub_category, platform,
	incident_date, incident_time, complaint_date, complaint_name_address,
	complaint_phone, complaint_mail, suspect_phone, suspect_social,
	total_loss, additional_info, full_data_json
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (ack_no) DO NOTHING
RETURNING id`

// SQLStore is a Store backed by database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database, applies the schema and returns the store.
func Open(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(d.Driver, d.dsn(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.Name, err)
	}
	if d.MaxOpenConns > 0 {
		db.SetMaxOpenConns(d.MaxOpenConns)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", d.Name, err)
	}

	s := New(db, d)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database.
func New(db *sql.DB, d Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: d}
}

// Migrate creates the complaints table if needed.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("failed to create complaints table: %w", err)
	}
	return nil
}

// Save inserts rec and returns its id. A record whose acknowledgement number
// is already stored is rejected with ErrDuplicate and leaves the table as it
// was.
func (s *SQLStore) Save(ctx context.Context, rec complaint.Record) (int64, error) {
	if rec.AckNo == "" {
		return 0, ErrMissingKey
	}
	rec.ID = 0
	blob, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("failed to encode record: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, s.dialect.rebind(insertComplaint),
		rec.CSRNo, rec.AckNo, rec.Category, rec.SubCategory, rec.Platform,
		rec.IncidentDate, rec.IncidentTime, rec.ComplaintDate, rec.NameAddress(),
		rec.ComplainantPhone, rec.ComplainantEmail, rec.SuspectPhone, rec.SuspectIdentifier,
		rec.TotalLoss, rec.AdditionalDetails, string(blob),
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrDuplicate, rec.AckNo)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}
	return id, nil
}

// ListAll returns every record, newest first.
func (s *SQLStore) ListAll(ctx context.Context) ([]complaint.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, full_data_json FROM complaints ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := []complaint.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// Get returns the record with the given id.
func (s *SQLStore) Get(ctx context.Context, id int64) (complaint.Record, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT id, full_data_json FROM complaints WHERE id = ?`), id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return complaint.Record{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return rec, err
}

// Delete removes the record with the given id. Deleting a missing id is not
// an error.
func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM complaints WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaints`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (complaint.Record, error) {
	var (
		id   int64
		blob string
	)
	if err := sc.Scan(&id, &blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return complaint.Record{}, err
		}
		return complaint.Record{}, fmt.Errorf("failed to read record: %w", err)
	}
	var rec complaint.Record
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return complaint.Record{}, fmt.Errorf("failed to decode record %d: %w", id, err)
	}
	return rec.WithID(id), nil
}
