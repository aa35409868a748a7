package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"advanced-todo/internal/core/domain"
)

func newSqlxDB(t *testing.T, driverName string) *sqlx.DB {
	t.Helper()

	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return sqlx.NewDb(mockDB, driverName)
}

func TestBuildListTasksQuery_NoFilters(t *testing.T) {
	db := newSqlxDB(t, driverPgx)

	query, args, err := buildListTasksQuery(db, domain.TaskFilter{})

	require.NoError(t, err)
	require.Equal(t, "SELECT id, title, description, status, created_at, updated_at FROM tasks ORDER BY created_at DESC, id DESC", query)
	require.Empty(t, args)
}

func TestBuildListTasksQuery_AllFiltersPostgres(t *testing.T) {
	db := newSqlxDB(t, driverPgx)
	filter := domain.NewTaskFilter("pending,completed", "Milk", "asc")

	query, args, err := buildListTasksQuery(db, filter)

	require.NoError(t, err)
	require.Equal(t,
		"SELECT id, title, description, status, created_at, updated_at FROM tasks"+
			" WHERE status IN ($1, $2) AND (LOWER(title) LIKE $3 OR LOWER(description) LIKE $4)"+
			" ORDER BY created_at ASC, id ASC",
		query,
	)
	require.Equal(t, []any{"pending", "completed", "%milk%", "%milk%"}, args)
}

func TestBuildListTasksQuery_MySQLPlaceholders(t *testing.T) {
	db := newSqlxDB(t, driverMySQL)
	filter := domain.NewTaskFilter("in_progress", "", "desc")

	query, args, err := buildListTasksQuery(db, filter)

	require.NoError(t, err)
	require.Equal(t,
		"SELECT id, title, description, status, created_at, updated_at FROM tasks WHERE status IN (?) ORDER BY created_at DESC, id DESC",
		query,
	)
	require.Equal(t, []any{"in_progress"}, args)
}

func TestBuildListTasksQuery_InvalidStatusesDropPredicate(t *testing.T) {
	db := newSqlxDB(t, driverPgx)

	query, args, err := buildListTasksQuery(db, domain.NewTaskFilter("done,,archived", "   ", "sideways"))

	require.NoError(t, err)
	require.NotContains(t, query, "WHERE")
	require.Contains(t, query, "ORDER BY created_at DESC")
	require.Empty(t, args)
}

func TestBuildListTasksQuery_UserInputNeverInQueryText(t *testing.T) {
	db := newSqlxDB(t, driverPgx)
	search := "'; DROP TABLE tasks; --"

	query, args, err := buildListTasksQuery(db, domain.NewTaskFilter("pending", search, "asc"))

	require.NoError(t, err)
	require.NotContains(t, query, "DROP")
	require.Contains(t, args, "%'; drop table tasks; --%")
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	require.Equal(t, `%100\% done%`, likePattern("100% DONE"))
	require.Equal(t, `%snake\_case%`, likePattern("snake_case"))
	require.Equal(t, `%back\\slash%`, likePattern(`back\slash`))
}
