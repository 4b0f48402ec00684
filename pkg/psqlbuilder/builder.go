// Package psqlbuilder предоставляет squirrel builder с плейсхолдерами PostgreSQL ($1, $2, ...)
package psqlbuilder

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select создает SELECT запрос
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert создает INSERT запрос
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update создает UPDATE запрос
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete создает DELETE запрос
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}

// UUID приводит uuid.UUID к строке для условий squirrel.Eq.
// uuid.UUID - массив [16]byte, и squirrel развернул бы его в IN (...) из 16 байт.
func UUID(id uuid.UUID) string {
	return id.String()
}

// UUIDs приводит список uuid.UUID к строкам для условий IN (...)
func UUIDs(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
