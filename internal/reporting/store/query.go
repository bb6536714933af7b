package store

import (
	"strconv"
	"strings"

	"amparo/internal/reporting/models"
)

// query accumulates the conditions of one report and their positional
// arguments.
type query struct {
	where []string
	args  []any
}

// arg binds v and returns its placeholder.
func (q *query) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *query) and(cond string) {
	q.where = append(q.where, cond)
}

// sql joins base, the WHERE clause and tail.
func (q *query) sql(base, tail string) string {
	var b strings.Builder
	b.WriteString(base)
	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	if tail != "" {
		b.WriteString(" ")
		b.WriteString(tail)
	}
	return b.String()
}

// orderBy maps a sort key to its ORDER BY clause. Keys outside set resolve
// to its default.
func orderBy(set models.SortSet, clauses map[models.Sort]string, key models.Sort) string {
	return "ORDER BY " + clauses[set.Resolve(string(key))]
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// contains builds a LIKE pattern matching s literally anywhere. Postgres
// treats backslash as the default LIKE escape.
func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
