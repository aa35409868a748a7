package db

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"advanced-todo/internal/core/domain"
)

const taskColumns = "id, title, description, status, created_at, updated_at"

const selectTasksQuery = "SELECT " + taskColumns + " FROM tasks"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListTasksQuery turns a TaskFilter into SQL plus bound arguments.
// Only fixed fragments are concatenated; every user value travels as a
// parameter, and the sort keyword comes from a closed switch.
func buildListTasksQuery(db *sqlx.DB, filter domain.TaskFilter) (string, []any, error) {
	var where []string
	params := map[string]any{}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		where = append(where, "status IN (:statuses)")
		params["statuses"] = statuses
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, "(LOWER(title) LIKE :search OR LOWER(description) LIKE :search)")
		params["search"] = likePattern(search)
	}

	var b strings.Builder
	b.WriteString(selectTasksQuery)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	direction := orderDirection(filter.Sort)
	b.WriteString(" ORDER BY created_at " + direction + ", id " + direction)

	query, args, err := sqlx.Named(b.String(), params)
	if err != nil {
		return "", nil, err
	}
	query, args, err = sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return db.Rebind(query), args, nil
}

func orderDirection(sort domain.SortDirection) string {
	if sort == domain.SortAsc {
		return "ASC"
	}
	return "DESC"
}

// likePattern lowercases the search text and escapes LIKE wildcards so the
// text is matched as a literal substring.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}
