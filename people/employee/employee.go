// Package employee 在人员领域之上扩展雇员属性：
// 雇佣周期、岗位、薪酬与工作联系方式。
// 校验钩子通过 lifecycle.Chain 叠加在人员基础规则之上。
package employee

import (
	"strings"
	"time"

	"gorecord/domain"
	"gorecord/people"
	"gorecord/validation"
)

// WorkSchedule 工作制。
type WorkSchedule string

const (
	ScheduleNotSelected WorkSchedule = "NOT_SELECTED"
	ScheduleFullTime    WorkSchedule = "FULL_TIME"
	SchedulePartTime    WorkSchedule = "PART_TIME"
	ScheduleRemote      WorkSchedule = "REMOTE"
	ScheduleFlexible    WorkSchedule = "FLEXIBLE"
	ScheduleShift       WorkSchedule = "SHIFT"
)

// EmploymentType 雇佣形式。
type EmploymentType string

const (
	TypeNotSelected EmploymentType = "NOT_SELECTED"
	TypeFullTime    EmploymentType = "FULL_TIME"
	TypePartTime    EmploymentType = "PART_TIME"
	TypeContract    EmploymentType = "CONTRACT"
	TypeIntern      EmploymentType = "INTERN"
	TypeTemporary   EmploymentType = "TEMPORARY"
)

// Employee 雇员实体。
type Employee struct {
	people.Person

	EmployeeNumber string `json:"employee_number"`

	HireDate          *time.Time `json:"hire_date,omitempty"`
	TerminationDate   *time.Time `json:"termination_date,omitempty"`
	TerminationReason string     `json:"termination_reason,omitempty"`

	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`

	Schedule       WorkSchedule   `json:"work_schedule"`
	EmploymentType EmploymentType `json:"employment_type"`

	Salary   float64 `json:"salary,omitempty"`
	Currency string  `json:"currency,omitempty"`

	WorkEmail      string `json:"work_email,omitempty"`
	WorkPhone      string `json:"work_phone,omitempty"`
	OfficeLocation string `json:"office_location,omitempty"`

	SupervisorID *int64 `json:"supervisor_id,omitempty"`
}

// Clone 返回独立副本。
func (e *Employee) Clone() *Employee {
	copied := *e
	copied.Person = *e.Person.Clone()
	if e.HireDate != nil {
		hire := *e.HireDate
		copied.HireDate = &hire
	}
	if e.TerminationDate != nil {
		term := *e.TerminationDate
		copied.TerminationDate = &term
	}
	if e.SupervisorID != nil {
		supervisor := *e.SupervisorID
		copied.SupervisorID = &supervisor
	}
	return &copied
}

// IsEmployed 某时刻是否在职。
func (e *Employee) IsEmployed(now time.Time) bool {
	if e.HireDate == nil || e.HireDate.After(now) {
		return false
	}
	return e.TerminationDate == nil || e.TerminationDate.After(now)
}

// Tenure 工龄；未入职返回 0，已离职按离职日截止。
func (e *Employee) Tenure(now time.Time) time.Duration {
	if e.HireDate == nil || e.HireDate.After(now) {
		return 0
	}
	end := now
	if e.TerminationDate != nil && e.TerminationDate.Before(now) {
		end = *e.TerminationDate
	}
	return end.Sub(*e.HireDate)
}

// FullPosition 返回「部门 / 岗位」描述。
func (e *Employee) FullPosition() string {
	switch {
	case e.Department != "" && e.Position != "":
		return e.Department + " / " + e.Position
	case e.Department != "":
		return e.Department
	default:
		return e.Position
	}
}

// ValidateEmployment 雇员自身的校验规则，人员基础规则由钩子链保证。
func (e *Employee) ValidateEmployment() error {
	return validation.All(
		func() error { return validation.Required(e.EmployeeNumber, "employee number") },
		func() error { return validation.Email(e.WorkEmail, "work email") },
		func() error { return validation.Phone(e.WorkPhone, "work phone") },
		func() error {
			return validation.OneOf(string(e.Schedule), "work schedule",
				string(ScheduleNotSelected), string(ScheduleFullTime), string(SchedulePartTime),
				string(ScheduleRemote), string(ScheduleFlexible), string(ScheduleShift))
		},
		func() error {
			return validation.OneOf(string(e.EmploymentType), "employment type",
				string(TypeNotSelected), string(TypeFullTime), string(TypePartTime),
				string(TypeContract), string(TypeIntern), string(TypeTemporary))
		},
		func() error {
			if e.HireDate == nil {
				return nil
			}
			return validation.NotInFuture(*e.HireDate, "hire date", time.Now())
		},
		func() error {
			if e.TerminationDate != nil && e.HireDate != nil && e.TerminationDate.Before(*e.HireDate) {
				return domain.NewValidationError("termination date must not precede hire date")
			}
			return nil
		},
		func() error {
			if e.Salary < 0 {
				return domain.NewValidationError("salary must not be negative")
			}
			if e.Salary > 0 && e.Currency == "" {
				return domain.NewValidationError("currency required when salary is set")
			}
			return nil
		},
	)
}

// NormalizeEmployment 雇员字段的规范化：币种大写、去空格。
func (e *Employee) NormalizeEmployment() {
	e.EmployeeNumber = strings.TrimSpace(e.EmployeeNumber)
	e.Position = strings.TrimSpace(e.Position)
	e.Department = strings.TrimSpace(e.Department)
	e.Currency = strings.ToUpper(strings.TrimSpace(e.Currency))
	e.WorkEmail = strings.ToLower(strings.TrimSpace(e.WorkEmail))
	e.WorkPhone = strings.TrimSpace(e.WorkPhone)
	e.OfficeLocation = strings.TrimSpace(e.OfficeLocation)
	if e.Schedule == "" {
		e.Schedule = ScheduleNotSelected
	}
	if e.EmploymentType == "" {
		e.EmploymentType = TypeNotSelected
	}
}
