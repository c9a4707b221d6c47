package people

import (
	"gorecord/storage/sqlite"
)

// SQLiteSchema Person 的表结构描述，供 sqlite.NewRepo 使用。
var SQLiteSchema = sqlite.Schema[*Person]{
	Table: "people",
	Columns: []string{
		"first_name", "last_name", "middle_name",
		"birth_date", "gender", "marital_status",
		"email", "phone", "address", "citizenship", "notes",
	},
	Values: func(p *Person) []any {
		return []any{
			p.FirstName, p.LastName, p.MiddleName,
			sqlite.TimeArg(p.BirthDate), string(p.Gender), string(p.MaritalStatus),
			p.Email, p.Phone, p.Address, p.Citizenship, p.Notes,
		}
	},
	Fields: func(p *Person) []any {
		return []any{
			&p.FirstName, &p.LastName, &p.MiddleName,
			sqlite.NullTimePtr(&p.BirthDate), sqlite.StringAs(&p.Gender), sqlite.StringAs(&p.MaritalStatus),
			&p.Email, &p.Phone, &p.Address, &p.Citizenship, &p.Notes,
		}
	},
	New: func() *Person { return &Person{} },
	DDL: `CREATE TABLE IF NOT EXISTS people (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		version        INTEGER NOT NULL DEFAULT 0,
		created_at     TIMESTAMP NOT NULL,
		created_by     TEXT NOT NULL DEFAULT '',
		updated_at     TIMESTAMP NOT NULL,
		updated_by     TEXT NOT NULL DEFAULT '',
		deleted_at     TIMESTAMP,
		deleted_by     TEXT,
		first_name     TEXT NOT NULL,
		last_name      TEXT NOT NULL,
		middle_name    TEXT NOT NULL DEFAULT '',
		birth_date     TIMESTAMP,
		gender         TEXT NOT NULL DEFAULT 'NOT_SELECTED',
		marital_status TEXT NOT NULL DEFAULT 'NOT_SELECTED',
		email          TEXT NOT NULL DEFAULT '',
		phone          TEXT NOT NULL DEFAULT '',
		address        TEXT NOT NULL DEFAULT '',
		citizenship    TEXT NOT NULL DEFAULT '',
		notes          TEXT NOT NULL DEFAULT ''
	)`,
}
