package common

import (
	"gorm.io/datatypes"
)

// Employee is identified by both its ID and its email address.
type Employee struct {
	ID    string
	Email string
	Name  string
	Title string
}

// EmployeeProfile holds the fields of an Employee that are not keys.
type EmployeeProfile struct {
	Name  string
	Title string
}

type EmployeeModel struct {
	ID      string `gorm:"primaryKey"`
	Email   string `gorm:"uniqueIndex;not null"`
	Profile datatypes.JSONType[EmployeeProfile]
}

func ToEmployeeModel(e Employee) EmployeeModel {
	return EmployeeModel{
		ID:    e.ID,
		Email: e.Email,
		Profile: datatypes.NewJSONType(EmployeeProfile{
			Name:  e.Name,
			Title: e.Title,
		}),
	}
}

func (m *EmployeeModel) ToEmployee() Employee {
	profile := m.Profile.Data()
	return Employee{
		ID:    m.ID,
		Email: m.Email,
		Name:  profile.Name,
		Title: profile.Title,
	}
}
