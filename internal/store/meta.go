package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"golang.org/x/mod/semver"
)

// SchemaVersion is the layout written by this build. A database stamped
// with a different major version, or a newer one, is refused.
const SchemaVersion = "v1.1.0"

const metaSchemaVersion = "schema_version"

func (s *Store) checkVersion(ctx context.Context) error {
	q := s.Queries()
	stored, err := q.metaValue(ctx, metaSchemaVersion)
	switch {
	case errors.Is(err, ErrNotFound):
		return q.setMeta(ctx, metaSchemaVersion, SchemaVersion)
	case err != nil:
		return err
	}

	if err := compatible(stored, SchemaVersion); err != nil {
		return err
	}
	if semver.Compare(stored, SchemaVersion) < 0 {
		return q.setMeta(ctx, metaSchemaVersion, SchemaVersion)
	}
	return nil
}

// compatible reports whether a database stamped stored can be opened by
// a build at current.
func compatible(stored, current string) error {
	if !semver.IsValid(stored) {
		return fmt.Errorf("check schema version: invalid stored version %q", stored)
	}
	if semver.Major(stored) != semver.Major(current) {
		return fmt.Errorf("check schema version: database is %s, this build supports %s.x",
			stored, semver.Major(current))
	}
	if semver.Compare(stored, current) > 0 {
		return fmt.Errorf("check schema version: database %s is newer than %s", stored, current)
	}
	return nil
}

// StoredVersion returns the schema version recorded in the database.
func (s *Store) StoredVersion(ctx context.Context) (string, error) {
	return s.Queries().metaValue(ctx, metaSchemaVersion)
}

func (q *Queries) metaValue(ctx context.Context, name string) (string, error) {
	query, args := q.builder().Select("value").
		From(entsql.Table(metaTable.Name)).
		Where(entsql.EQ("name", name)).
		Query()
	var v string
	if err := q.ex.QueryRowxContext(ctx, query, args...).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read meta %s: %w", name, err)
	}
	return v, nil
}

func (q *Queries) setMeta(ctx context.Context, name, value string) error {
	query, args := q.builder().Insert(metaTable.Name).
		Columns("name", "value").
		Values(name, value).
		OnConflict(entsql.ConflictColumns("name"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := q.ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("write meta %s: %w", name, err)
	}
	return nil
}
