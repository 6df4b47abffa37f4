package source

import (
	"context"
	"errors"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recon-engine/core/database"
	"recon-engine/core/logger"
	"recon-engine/core/storage/mocks"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	journal := logger.NewJournal()
	l := NewLoader(WithLogger(journal.Log))

	path := writeFile(t, "gl.csv", "txn_id,amount\n1001,100.50\n1002,\n")
	ds, err := l.Load(context.Background(), Spec{Name: "gl", Path: path})
	require.NoError(t, err)

	assert.Equal(t, "gl", ds.Name)
	assert.Equal(t, []string{"txn_id", "amount"}, ds.Columns)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, int64(1001), ds.Records[0]["txn_id"])
	assert.Equal(t, 100.5, ds.Records[0]["amount"])
	assert.Nil(t, ds.Records[1]["amount"])

	entries := journal.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "DataLoader", entries[1].Component)
	assert.Equal(t, "Loaded 2 records from gl", entries[1].Message)
}

func TestLoadFileDelimiters(t *testing.T) {
	l := NewLoader()

	tsv := writeFile(t, "bank.tsv", "ref\tvalue\nA\t1\n")
	ds, err := l.Load(context.Background(), Spec{Name: "bank", Kind: KindFile, Path: tsv})
	require.NoError(t, err)
	assert.Equal(t, []string{"ref", "value"}, ds.Columns)

	semi := writeFile(t, "bank.txt", "ref;value\nA;1\n")
	ds, err = l.Load(context.Background(), Spec{Name: "bank", Path: semi, Delimiter: ";"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ref", "value"}, ds.Columns)
}

func TestLoadObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "recon", "extracts/bank.csv", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader("ref,value\nA,1\nB,2\n")), nil).Once()

	l := NewLoader(WithStorage(client, "recon"))
	ds, err := l.Load(context.Background(), Spec{Name: "bank", Kind: KindObject, Path: "extracts/bank.csv"})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	client.AssertExpectations(t)
}

func TestLoadObjectError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "recon", "missing.csv", mock.Anything).
		Return(nil, errors.New("NoSuchKey"))

	l := NewLoader(WithStorage(client, "recon"))
	_, err := l.Load(context.Background(), Spec{Name: "x", Kind: KindObject, Path: "missing.csv"})
	assert.EqualError(t, err, "failed to get object missing.csv: NoSuchKey")
}

func TestLoadTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE gl_export (txn_id INTEGER, amount REAL, payee TEXT)").Error)
	require.NoError(t, db.Exec("INSERT INTO gl_export VALUES (1001, 100.5, 'Acme'), (1002, NULL, 'Beta')").Error)

	l := NewLoader(WithDatabase(db))
	ds, err := l.Load(context.Background(), Spec{Name: "gl", Kind: KindTable, Path: "gl_export"})
	require.NoError(t, err)

	assert.Equal(t, []string{"txn_id", "amount", "payee"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, int64(1001), ds.Records[0]["txn_id"])
	assert.Equal(t, 100.5, ds.Records[0]["amount"])
	assert.Equal(t, "Acme", ds.Records[0]["payee"])
	assert.Nil(t, ds.Records[1]["amount"])

	_, err = l.Load(context.Background(), Spec{Name: "gl", Kind: KindTable, Path: "gl; DROP TABLE x"})
	assert.EqualError(t, err, `invalid table name "gl; DROP TABLE x"`)
}

func TestLoadMissingBackend(t *testing.T) {
	l := NewLoader()
	for _, kind := range []Kind{KindObject, KindTable, KindQuery} {
		_, err := l.Load(context.Background(), Spec{Name: "x", Kind: kind, Path: "p"})
		assert.ErrorIs(t, err, ErrBackendUnavailable, kind)
	}
}

type fakeRows struct {
	fields []string
	rows   [][]any
	pos    int
	closed bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.fields))
	for i, f := range r.fields {
		out[i] = pgconn.FieldDescription{Name: f}
	}
	return out
}
func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}
func (r *fakeRows) Scan(...any) error      { return errors.New("not supported") }
func (r *fakeRows) Values() ([]any, error) { return r.rows[r.pos-1], nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

type fakeQuerier struct {
	sql  string
	rows *fakeRows
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.sql = sql
	return q.rows, nil
}

func TestLoadQuery(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{
		fields: []string{"id", "amount", "posted"},
		rows: [][]any{
			{int32(7), pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true}, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			{int32(8), pgtype.Numeric{}, nil},
		},
	}}

	l := NewLoader(WithPostgres(q))
	ds, err := l.Load(context.Background(), Spec{Name: "ar", Kind: KindQuery, Path: "SELECT id, amount, posted FROM ar"})
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, amount, posted FROM ar", q.sql)
	assert.True(t, q.rows.closed)
	assert.Equal(t, []string{"id", "amount", "posted"}, ds.Columns)
	assert.Equal(t, int64(7), ds.Records[0]["id"])
	assert.Equal(t, 12.5, ds.Records[0]["amount"])
	assert.Equal(t, "2024-03-01", ds.Records[0]["posted"])
	assert.Nil(t, ds.Records[1]["amount"])
}

func TestPgValue(t *testing.T) {
	id := [16]byte{0x12, 0x3e, 0x45, 0x67, 0xe8, 0x9b, 0x12, 0xd3, 0xa4, 0x56, 0x42, 0x66, 0x14, 0x17, 0x40, 0x00}
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", pgValue(id))
	assert.Equal(t, "x", pgValue(pgtype.Text{String: "x", Valid: true}))
	assert.Nil(t, pgValue(pgtype.Text{}))
	assert.Equal(t, true, pgValue(pgtype.Bool{Bool: true, Valid: true}))
	assert.Equal(t, "plain", pgValue("plain"))
}

func TestLoadAll(t *testing.T) {
	l := NewLoader()
	gl := writeFile(t, "gl.csv", "id\n1\n")
	bank := writeFile(t, "bank.csv", "id\n1\n2\n")

	reg, err := l.LoadAll(context.Background(), []Spec{{Name: "gl", Path: gl}, {Name: "bank", Path: bank}})
	require.NoError(t, err)
	assert.Equal(t, []string{"gl", "bank"}, reg.Names())

	_, err = l.LoadAll(context.Background(), []Spec{{Name: "gl", Path: filepath.Join(t.TempDir(), "none.csv")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load source gl: ")
}

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		err  string
	}{
		{"Valid", Spec{Name: "a", Path: "a.csv"}, ""},
		{"NoName", Spec{Path: "a.csv"}, "source name is required"},
		{"NoPath", Spec{Name: "a"}, "source a: path is required"},
		{"BadKind", Spec{Name: "a", Path: "p", Kind: "ftp"}, `source a: unsupported kind "ftp"`},
		{"LongDelimiter", Spec{Name: "a", Path: "p", Delimiter: "||"}, "source a: delimiter must be a single character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.err)
		})
	}
}

func TestCheckKinds(t *testing.T) {
	allowed := []Kind{KindObject, KindTable}

	assert.NoError(t, CheckKinds([]Spec{
		{Name: "ledger", Kind: KindObject, Path: "extracts/ledger.csv"},
		{Name: "bank", Kind: "TABLE", Path: "bank_lines"},
	}, allowed))

	err := CheckKinds([]Spec{{Name: "ledger", Path: "/etc/passwd"}}, allowed)
	assert.ErrorIs(t, err, ErrKindNotAllowed)
	assert.EqualError(t, err, "source kind not allowed: source ledger is file")

	err = CheckKinds([]Spec{{Name: "q", Kind: KindQuery, Path: "SELECT 1"}}, allowed)
	assert.ErrorIs(t, err, ErrKindNotAllowed)
}
