package employee

import (
	"gorecord/storage/sqlite"
)

// SQLiteSchema Employee 的表结构描述（人员列与雇员列合并在一张表）。
var SQLiteSchema = sqlite.Schema[*Employee]{
	Table: "employees",
	Columns: []string{
		"first_name", "last_name", "middle_name",
		"birth_date", "gender", "marital_status",
		"email", "phone", "address", "citizenship", "notes",
		"employee_number", "hire_date", "termination_date", "termination_reason",
		"position", "department", "work_schedule", "employment_type",
		"salary", "currency", "work_email", "work_phone", "office_location",
		"supervisor_id",
	},
	Values: func(e *Employee) []any {
		return []any{
			e.FirstName, e.LastName, e.MiddleName,
			sqlite.TimeArg(e.BirthDate), string(e.Gender), string(e.MaritalStatus),
			e.Email, e.Phone, e.Address, e.Citizenship, e.Notes,
			e.EmployeeNumber, sqlite.TimeArg(e.HireDate), sqlite.TimeArg(e.TerminationDate), e.TerminationReason,
			e.Position, e.Department, string(e.Schedule), string(e.EmploymentType),
			e.Salary, e.Currency, e.WorkEmail, e.WorkPhone, e.OfficeLocation,
			sqlite.Int64Arg(e.SupervisorID),
		}
	},
	Fields: func(e *Employee) []any {
		return []any{
			&e.FirstName, &e.LastName, &e.MiddleName,
			sqlite.NullTimePtr(&e.BirthDate), sqlite.StringAs(&e.Gender), sqlite.StringAs(&e.MaritalStatus),
			&e.Email, &e.Phone, &e.Address, &e.Citizenship, &e.Notes,
			&e.EmployeeNumber, sqlite.NullTimePtr(&e.HireDate), sqlite.NullTimePtr(&e.TerminationDate), &e.TerminationReason,
			&e.Position, &e.Department, sqlite.StringAs(&e.Schedule), sqlite.StringAs(&e.EmploymentType),
			&e.Salary, &e.Currency, &e.WorkEmail, &e.WorkPhone, &e.OfficeLocation,
			sqlite.NullInt64Ptr(&e.SupervisorID),
		}
	},
	New: func() *Employee { return &Employee{} },
	DDL: `CREATE TABLE IF NOT EXISTS employees (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		version            INTEGER NOT NULL DEFAULT 0,
		created_at         TIMESTAMP NOT NULL,
		created_by         TEXT NOT NULL DEFAULT '',
		updated_at         TIMESTAMP NOT NULL,
		updated_by         TEXT NOT NULL DEFAULT '',
		deleted_at         TIMESTAMP,
		deleted_by         TEXT,
		first_name         TEXT NOT NULL,
		last_name          TEXT NOT NULL,
		middle_name        TEXT NOT NULL DEFAULT '',
		birth_date         TIMESTAMP,
		gender             TEXT NOT NULL DEFAULT 'NOT_SELECTED',
		marital_status     TEXT NOT NULL DEFAULT 'NOT_SELECTED',
		email              TEXT NOT NULL DEFAULT '',
		phone              TEXT NOT NULL DEFAULT '',
		address            TEXT NOT NULL DEFAULT '',
		citizenship        TEXT NOT NULL DEFAULT '',
		notes              TEXT NOT NULL DEFAULT '',
		employee_number    TEXT NOT NULL,
		hire_date          TIMESTAMP,
		termination_date   TIMESTAMP,
		termination_reason TEXT NOT NULL DEFAULT '',
		position           TEXT NOT NULL DEFAULT '',
		department         TEXT NOT NULL DEFAULT '',
		work_schedule      TEXT NOT NULL DEFAULT 'NOT_SELECTED',
		employment_type    TEXT NOT NULL DEFAULT 'NOT_SELECTED',
		salary             REAL NOT NULL DEFAULT 0,
		currency           TEXT NOT NULL DEFAULT '',
		work_email         TEXT NOT NULL DEFAULT '',
		work_phone         TEXT NOT NULL DEFAULT '',
		office_location    TEXT NOT NULL DEFAULT '',
		supervisor_id      INTEGER
	)`,
}
