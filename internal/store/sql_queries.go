package store

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-seed-api/migrations"
)

const documentsTable = "documents"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// dialect captures the JSON flavour of one SQL database.
type dialect interface {
	migrationDialect() string
	placeholder() sq.PlaceholderFormat
	// jsonValue wraps a serialized JSON object so it binds as a document body.
	jsonValue(raw string) sq.Sqlizer
	// matchFields is the condition "body contains every field of f".
	matchFields(f Fields) (sq.Sqlizer, error)
	// mergeBody is the new body after merging the serialized patch into it.
	mergeBody(rawPatch string) sq.Sqlizer
	now() sq.Sqlizer
	uniqueIndexDDL(collection, field string) string
}

type postgresDialect struct{}

func (postgresDialect) migrationDialect() string          { return migrations.DialectPostgres }
func (postgresDialect) placeholder() sq.PlaceholderFormat { return sq.Dollar }

func (postgresDialect) jsonValue(raw string) sq.Sqlizer {
	return sq.Expr("?::jsonb", raw)
}

func (postgresDialect) matchFields(f Fields) (sq.Sqlizer, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}
	return sq.Expr("body @> ?::jsonb", string(raw)), nil
}

func (postgresDialect) mergeBody(rawPatch string) sq.Sqlizer {
	return sq.Expr("body || ?::jsonb", rawPatch)
}

func (postgresDialect) now() sq.Sqlizer { return sq.Expr("NOW()") }

func (postgresDialect) uniqueIndexDDL(collection, field string) string {
	return fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s_%s_%s_key ON %s ((body->>'%s')) WHERE collection = '%s'",
		documentsTable, collection, field, documentsTable, field, collection,
	)
}

type sqliteDialect struct{}

func (sqliteDialect) migrationDialect() string          { return migrations.DialectSQLite }
func (sqliteDialect) placeholder() sq.PlaceholderFormat { return sq.Question }

func (sqliteDialect) jsonValue(raw string) sq.Sqlizer {
	return sq.Expr("json(?)", raw)
}

func (sqliteDialect) matchFields(f Fields) (sq.Sqlizer, error) {
	if len(f) == 0 {
		return sq.Expr("1 = 1"), nil
	}

	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	and := make(sq.And, 0, len(keys))
	for _, k := range keys {
		path := sqliteJSONPath(k)
		switch v := f[k].(type) {
		case nil:
			and = append(and, sq.Expr("json_extract(body, ?) IS NULL", path))
		case map[string]any, []any, Fields:
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
			}
			and = append(and, sq.Expr("json_extract(body, ?) = json(?)", path, string(raw)))
		case json.Number:
			and = append(and, sq.Expr("json_extract(body, ?) = ?", path, sqliteNumber(v)))
		default:
			and = append(and, sq.Expr("json_extract(body, ?) = ?", path, v))
		}
	}

	return and, nil
}

func (sqliteDialect) mergeBody(rawPatch string) sq.Sqlizer {
	return sq.Expr("json_patch(body, ?)", rawPatch)
}

func (sqliteDialect) now() sq.Sqlizer { return sq.Expr("CURRENT_TIMESTAMP") }

func (sqliteDialect) uniqueIndexDDL(collection, field string) string {
	return fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s_%s_%s_key ON %s (json_extract(body, '$.%s')) WHERE collection = '%s'",
		documentsTable, collection, field, documentsTable, field, collection,
	)
}

// sqliteNumber binds n as INTEGER when it is one, as json_extract returns it.
func sqliteNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func sqliteJSONPath(key string) string {
	return `$."` + strings.ReplaceAll(key, `"`, `\"`) + `"`
}

// insertDocumentQuery builds INSERT INTO documents (collection,id,body).
func insertDocumentQuery(d dialect, collection, id, rawBody string) (string, []any, error) {
	return sq.Insert(documentsTable).
		Columns("collection", "id", "body").
		Values(collection, id, d.jsonValue(rawBody)).
		PlaceholderFormat(d.placeholder()).
		ToSql()
}

// findDocumentQuery builds the lookup of one document by id.
func findDocumentQuery(d dialect, collection, id string) (string, []any, error) {
	return sq.Select("id", "body").
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		PlaceholderFormat(d.placeholder()).
		ToSql()
}

// findDocumentsQuery builds the OR-of-filters scan of a collection.
func findDocumentsQuery(d dialect, collection string, anyOf []Fields) (string, []any, error) {
	builder := sq.Select("id", "body").
		From(documentsTable).
		Where(sq.Eq{"collection": collection}).
		OrderBy("created_at", "id").
		PlaceholderFormat(d.placeholder())

	if len(anyOf) > 0 {
		or := make(sq.Or, 0, len(anyOf))
		for _, f := range anyOf {
			cond, err := d.matchFields(f)
			if err != nil {
				return "", nil, err
			}
			or = append(or, cond)
		}
		builder = builder.Where(or)
	}

	return builder.ToSql()
}

// updateDocumentQuery builds the merge of a serialized patch into one body.
func updateDocumentQuery(d dialect, collection, id, rawPatch string) (string, []any, error) {
	return sq.Update(documentsTable).
		Set("body", d.mergeBody(rawPatch)).
		Set("updated_at", d.now()).
		Where(sq.Eq{"collection": collection, "id": id}).
		PlaceholderFormat(d.placeholder()).
		ToSql()
}

// deleteDocumentQuery builds the removal of one document.
func deleteDocumentQuery(d dialect, collection, id string) (string, []any, error) {
	return sq.Delete(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		PlaceholderFormat(d.placeholder()).
		ToSql()
}

// uniqueIndexQuery validates the names interpolated into the index DDL.
func uniqueIndexQuery(d dialect, collection, field string) (string, error) {
	if !identifierPattern.MatchString(collection) || !identifierPattern.MatchString(field) {
		return "", fmt.Errorf("%w: %q.%q", ErrInvalidIndex, collection, field)
	}
	return d.uniqueIndexDDL(collection, field), nil
}
