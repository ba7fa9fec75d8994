package dto

import (
	"time"

	"tuishare_backend/internal/feature/account/domain/entity"
)

// Response is the envelope returned by every account endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    any    `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Exists  *bool  `json:"exists,omitempty"`
}

// StudentView is the public form of a Student. It never carries the password hash.
type StudentView struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	SchoolID   string    `json:"schoolId"`
	SchoolName string    `json:"schoolName"`
	Course     string    `json:"course,omitempty"`
	Story      string    `json:"story,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewStudentView はStudentを公開用のビューに変換します。
func NewStudentView(s *entity.Student) any {
	return StudentView{
		ID:         s.ID,
		Email:      s.Email,
		FullName:   s.FullName,
		SchoolID:   s.SchoolID,
		SchoolName: s.SchoolName,
		Course:     s.Course,
		Story:      s.Story,
		CreatedAt:  s.CreatedAt,
	}
}

// SchoolView is the public form of a School.
type SchoolView struct {
	ID            string    `json:"id"`
	SchoolEmail   string    `json:"schoolEmail"`
	SchoolName    string    `json:"schoolName"`
	SchoolAddress string    `json:"schoolAddress"`
	ContactPerson string    `json:"contactPerson"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewSchoolView はSchoolを公開用のビューに変換します。
func NewSchoolView(s *entity.School) any {
	return SchoolView{
		ID:            s.ID,
		SchoolEmail:   s.SchoolEmail,
		SchoolName:    s.SchoolName,
		SchoolAddress: s.SchoolAddress,
		ContactPerson: s.ContactPerson,
		CreatedAt:     s.CreatedAt,
	}
}

// SupporterView is the public form of a Supporter.
type SupporterView struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Country    string    `json:"country"`
	Occupation string    `json:"occupation,omitempty"`
	Motivation string    `json:"motivation,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewSupporterView はSupporterを公開用のビューに変換します。
func NewSupporterView(s *entity.Supporter) any {
	return SupporterView{
		ID:         s.ID,
		Email:      s.Email,
		Name:       s.Name,
		Country:    s.Country,
		Occupation: s.Occupation,
		Motivation: s.Motivation,
		CreatedAt:  s.CreatedAt,
	}
}
