package db

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"trackr/internal/core/domain"
)

const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// stringList is stored as a JSON array.
type stringList []string

func (l stringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *stringList) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if raw == nil {
		*l = stringList{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

type fieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// changesColumn stores domain.Changes as a JSON object of {from, to} pairs.
type changesColumn map[string]fieldChange

func toChangesColumn(c domain.Changes) changesColumn {
	out := make(changesColumn, len(c))
	for field, change := range c {
		out[field] = fieldChange{From: change.From, To: change.To}
	}
	return out
}

func (c changesColumn) toDomain() domain.Changes {
	out := make(domain.Changes, len(c))
	for field, change := range c {
		out[field] = domain.FieldChange{From: change.From, To: change.To}
	}
	return out
}

func (c changesColumn) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]fieldChange(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *changesColumn) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if raw == nil {
		*c = changesColumn{}
		return nil
	}
	return json.Unmarshal(raw, (*map[string]fieldChange)(c))
}

func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported json column type %T", src)
	}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	value := v.String
	return &value
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	value := v.Time
	return &value
}
