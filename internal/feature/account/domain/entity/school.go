package entity

// School is a school receiving tuition on behalf of its students.
type School struct {
	Account `bson:",inline"`

	SchoolEmail   string `gorm:"uniqueIndex;size:255;not null" bson:"school_email" json:"schoolEmail"`
	SchoolName    string `gorm:"size:255;not null" bson:"school_name" json:"schoolName"`
	SchoolAddress string `gorm:"size:512;not null" bson:"school_address" json:"schoolAddress"`
	ContactPerson string `gorm:"size:255;not null" bson:"contact_person" json:"contactPerson"`
}

// TableName returns the table name for GORM.
func (*School) TableName() string { return "schools" }

func (*School) Kind() Kind { return KindSchool }

func (*School) KeyField() string { return "school_email" }

func (s *School) Key() string { return s.SchoolEmail }

func (*School) New() *School { return &School{} }

func (s *School) Clone() *School {
	c := *s
	return &c
}
