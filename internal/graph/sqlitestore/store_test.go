package sqlitestore

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metagraph-io/metagraph/internal/graph"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db), mock
}

func expectLoadNode(mock sqlmock.Sqlmock, guid string, rows *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name, value FROM node_props WHERE guid = ?`)).
		WithArgs(guid).
		WillReturnRows(rows)
}

func TestNode(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT guid FROM nodes WHERE guid = ?`)).
			WithArgs("g-1").
			WillReturnRows(sqlmock.NewRows([]string{"guid"}).AddRow("g-1"))
		expectLoadNode(mock, "g-1", sqlmock.NewRows([]string{"name", "value"}).
			AddRow("__typeName", `"Table"`).
			AddRow("Table.name", `"customers"`).
			AddRow("Table.retention", `90`).
			AddRow("Table.tags", `["gold","verified"]`))

		node, err := store.Node(context.Background(), "g-1")
		require.NoError(t, err)
		assert.Equal(t, "g-1", node.GUID())

		typeName, ok := graph.StringProperty(node, "__typeName")
		require.True(t, ok)
		assert.Equal(t, "Table", typeName)

		// JSON decoding yields float64 for numbers; Int64Property widens
		retention, ok := graph.Int64Property(node, "Table.retention")
		require.True(t, ok)
		assert.Equal(t, int64(90), retention)

		tags, ok := graph.StringsProperty(node, "Table.tags")
		require.True(t, ok)
		assert.Equal(t, []string{"gold", "verified"}, tags)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT guid FROM nodes WHERE guid = ?`)).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"guid"}))

		_, err := store.Node(context.Background(), "missing")
		assert.ErrorIs(t, err, graph.ErrNodeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEdgeTarget(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT in_guid FROM edges WHERE id = ?`)).
			WithArgs("e-1").
			WillReturnRows(sqlmock.NewRows([]string{"in_guid"}).AddRow("g-2"))
		expectLoadNode(mock, "g-2", sqlmock.NewRows([]string{"name", "value"}).
			AddRow("Column.name", `"id"`))

		node, err := store.EdgeTarget(context.Background(), "e-1")
		require.NoError(t, err)
		assert.Equal(t, "g-2", node.GUID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT in_guid FROM edges WHERE id = ?`)).
			WithArgs("e-missing").
			WillReturnRows(sqlmock.NewRows([]string{"in_guid"}))

		_, err := store.EdgeTarget(context.Background(), "e-missing")
		assert.ErrorIs(t, err, graph.ErrEdgeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRelated(t *testing.T) {
	t.Run("outbound", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT in_guid FROM edges WHERE out_guid = ? AND label = ? LIMIT 1`)).
			WithArgs("g-1", "__Table.db").
			WillReturnRows(sqlmock.NewRows([]string{"in_guid"}).AddRow("g-2"))
		expectLoadNode(mock, "g-2", sqlmock.NewRows([]string{"name", "value"}))

		node, err := store.Related(context.Background(), "g-1", "__Table.db", graph.DirectionOut)
		require.NoError(t, err)
		assert.Equal(t, "g-2", node.GUID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inbound", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT out_guid FROM edges WHERE in_guid = ? AND label = ? LIMIT 1`)).
			WithArgs("g-2", "__Table.db").
			WillReturnRows(sqlmock.NewRows([]string{"out_guid"}).AddRow("g-1"))
		expectLoadNode(mock, "g-1", sqlmock.NewRows([]string{"name", "value"}))

		node, err := store.Related(context.Background(), "g-2", "__Table.db", graph.DirectionIn)
		require.NoError(t, err)
		assert.Equal(t, "g-1", node.GUID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no relation", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT in_guid FROM edges WHERE out_guid = ? AND label = ? LIMIT 1`)).
			WithArgs("g-1", "__Table.schema").
			WillReturnRows(sqlmock.NewRows([]string{"in_guid"}))

		_, err := store.Related(context.Background(), "g-1", "__Table.schema", graph.DirectionOut)
		assert.ErrorIs(t, err, graph.ErrNoSuchRelation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNodesByType(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT guid FROM nodes WHERE type_name = ? ORDER BY guid`)).
		WithArgs("Table").
		WillReturnRows(sqlmock.NewRows([]string{"guid"}).AddRow("g-1").AddRow("g-2"))

	guids, err := store.NodesByType(context.Background(), "Table")
	require.NoError(t, err)
	assert.Equal(t, []string{"g-1", "g-2"}, guids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutNode(t *testing.T) {
	t.Run("mirrors type marker and upserts properties", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO nodes (guid, type_name) VALUES (?, ?)`)).
			WithArgs("g-1", "Table").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO node_props (guid, name, value) VALUES (?, ?, ?)`)).
			WithArgs("g-1", "__typeName", `"Table"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		guid, err := store.PutNode(context.Background(), "g-1", map[string]interface{}{
			"__typeName": "Table",
		})
		require.NoError(t, err)
		assert.Equal(t, "g-1", guid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("generates a guid when none given", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO nodes (guid, type_name) VALUES (?, ?)`)).
			WithArgs(sqlmock.AnyArg(), "").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		guid, err := store.PutNode(context.Background(), "", nil)
		require.NoError(t, err)
		assert.NotEmpty(t, guid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPutEdge(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO edges (id, label, out_guid, in_guid) VALUES (?, ?, ?, ?)`)).
		WithArgs("e-1", "__Table.db", "g-1", "g-2").
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := store.PutEdge(context.Background(), "e-1", "__Table.db", "g-1", "g-2")
	require.NoError(t, err)
	assert.Equal(t, "e-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
