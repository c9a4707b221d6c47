// Package people 提供人员领域模型：
// Person 实体、业务钩子与 SQLite 存储描述，
// 展示如何在生命周期框架之上搭建具体领域。
package people

import (
	"strings"
	"time"

	"gorecord/domain/record"
	"gorecord/validation"
)

// Gender 性别。
type Gender string

const (
	GenderNotSelected Gender = "NOT_SELECTED"
	GenderMale        Gender = "MALE"
	GenderFemale      Gender = "FEMALE"
)

// MaritalStatus 婚姻状况。
type MaritalStatus string

const (
	MaritalNotSelected MaritalStatus = "NOT_SELECTED"
	MaritalSingle      MaritalStatus = "SINGLE"
	MaritalMarried     MaritalStatus = "MARRIED"
	MaritalDivorced    MaritalStatus = "DIVORCED"
	MaritalWidowed     MaritalStatus = "WIDOWED"
)

// AgeCategory 年龄段。
type AgeCategory string

const (
	AgeUnknown    AgeCategory = "UNKNOWN"
	AgeChild      AgeCategory = "CHILD"
	AgeYoungAdult AgeCategory = "YOUNG_ADULT"
	AgeAdult      AgeCategory = "ADULT"
	AgeMiddleAged AgeCategory = "MIDDLE_AGED"
	AgeSenior     AgeCategory = "SENIOR"
)

// Person 人员实体。
type Person struct {
	record.Record

	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name,omitempty"`

	BirthDate *time.Time `json:"birth_date,omitempty"`

	Gender        Gender        `json:"gender"`
	MaritalStatus MaritalStatus `json:"marital_status"`

	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`

	Citizenship string `json:"citizenship,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Clone 返回独立副本。
func (p *Person) Clone() *Person {
	copied := *p
	if p.BirthDate != nil {
		birth := *p.BirthDate
		copied.BirthDate = &birth
	}
	return &copied
}

// FullName 返回「姓 名 父称」形式的全名。
func (p *Person) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.LastName, p.FirstName, p.MiddleName} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// Age 返回某时刻的周岁年龄；出生日期缺失时返回 -1。
func (p *Person) Age(now time.Time) int {
	if p.BirthDate == nil {
		return -1
	}
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return -1
	}
	return years
}

// IsAdult 是否年满 18 周岁。
func (p *Person) IsAdult(now time.Time) bool {
	return p.Age(now) >= 18
}

// AgeGroup 返回年龄段。
func (p *Person) AgeGroup(now time.Time) AgeCategory {
	age := p.Age(now)
	switch {
	case age < 0:
		return AgeUnknown
	case age < 18:
		return AgeChild
	case age < 30:
		return AgeYoungAdult
	case age < 50:
		return AgeAdult
	case age < 65:
		return AgeMiddleAged
	default:
		return AgeSenior
	}
}

// HasContactInfo 是否填写了任一联系方式。
func (p *Person) HasContactInfo() bool {
	return p.Email != "" || p.Phone != "" || p.Address != ""
}

// Validate 基础校验，可由上层钩子复用。
func (p *Person) Validate() error {
	return validation.All(
		func() error { return validation.PersonName(p.FirstName, "first name") },
		func() error { return validation.PersonName(p.LastName, "last name") },
		func() error {
			if p.MiddleName == "" {
				return nil
			}
			return validation.PersonName(p.MiddleName, "middle name")
		},
		func() error { return validation.Email(p.Email, "email") },
		func() error { return validation.Phone(p.Phone, "phone") },
		func() error {
			return validation.OneOf(string(p.Gender), "gender",
				string(GenderNotSelected), string(GenderMale), string(GenderFemale))
		},
		func() error {
			return validation.OneOf(string(p.MaritalStatus), "marital status",
				string(MaritalNotSelected), string(MaritalSingle), string(MaritalMarried),
				string(MaritalDivorced), string(MaritalWidowed))
		},
		func() error {
			if p.BirthDate == nil {
				return nil
			}
			return validation.NotInFuture(*p.BirthDate, "birth date", time.Now())
		},
	)
}

// Normalize 持久化前的规范化：去空格、邮箱小写。
func (p *Person) Normalize() {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.MiddleName = strings.TrimSpace(p.MiddleName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)
	p.Citizenship = strings.TrimSpace(p.Citizenship)
	if p.Gender == "" {
		p.Gender = GenderNotSelected
	}
	if p.MaritalStatus == "" {
		p.MaritalStatus = MaritalNotSelected
	}
}
