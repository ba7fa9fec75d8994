// Package dto defines data transfer objects for the account feature's HTTP transport layer.
package dto

import "tuishare_backend/internal/feature/account/domain/entity"

// StudentSignupReq represents the request body for POST /students/signup.
// It uses Gin's binding tags for validation. The password limit follows bcrypt's 72-byte input cap.
type StudentSignupReq struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	FullName   string `json:"fullName" binding:"required"`
	SchoolID   string `json:"schoolId" binding:"required"`
	SchoolName string `json:"schoolName" binding:"required"`
	Course     string `json:"course"`
	Story      string `json:"story"`
}

// Record converts the request into a Student with a normalized key.
func (r StudentSignupReq) Record() *entity.Student {
	return &entity.Student{
		Email:      entity.NormalizeKey(r.Email),
		FullName:   r.FullName,
		SchoolID:   r.SchoolID,
		SchoolName: r.SchoolName,
		Course:     r.Course,
		Story:      r.Story,
	}
}

// Secret returns the plaintext password.
func (r StudentSignupReq) Secret() string { return r.Password }

// SchoolSignupReq represents the request body for POST /schools/signup.
type SchoolSignupReq struct {
	SchoolEmail   string `json:"schoolEmail" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6,max=72"`
	SchoolName    string `json:"schoolName" binding:"required"`
	SchoolAddress string `json:"schoolAddress" binding:"required"`
	ContactPerson string `json:"contactPerson" binding:"required"`
}

// Record converts the request into a School with a normalized key.
func (r SchoolSignupReq) Record() *entity.School {
	return &entity.School{
		SchoolEmail:   entity.NormalizeKey(r.SchoolEmail),
		SchoolName:    r.SchoolName,
		SchoolAddress: r.SchoolAddress,
		ContactPerson: r.ContactPerson,
	}
}

// Secret returns the plaintext password.
func (r SchoolSignupReq) Secret() string { return r.Password }

// SupporterSignupReq represents the request body for POST /supporters/signup.
type SupporterSignupReq struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	Name       string `json:"name" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Occupation string `json:"occupation"`
	Motivation string `json:"motivation"`
}

// Record converts the request into a Supporter with a normalized key.
func (r SupporterSignupReq) Record() *entity.Supporter {
	return &entity.Supporter{
		Email:      entity.NormalizeKey(r.Email),
		Name:       r.Name,
		Country:    r.Country,
		Occupation: r.Occupation,
		Motivation: r.Motivation,
	}
}

// Secret returns the plaintext password.
func (r SupporterSignupReq) Secret() string { return r.Password }
