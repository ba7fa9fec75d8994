package entity

// Student is a student raising tuition.
// SchoolID and SchoolName are free-form and not checked against a School record.
type Student struct {
	Account `bson:",inline"`

	Email      string `gorm:"uniqueIndex;size:255;not null" bson:"email" json:"email"`
	FullName   string `gorm:"size:255;not null" bson:"full_name" json:"fullName"`
	SchoolID   string `gorm:"size:255;not null" bson:"school_id" json:"schoolId"`
	SchoolName string `gorm:"size:255;not null" bson:"school_name" json:"schoolName"`
	Course     string `gorm:"size:255" bson:"course,omitempty" json:"course,omitempty"`
	Story      string `gorm:"type:text" bson:"story,omitempty" json:"story,omitempty"`
}

// TableName returns the table name for GORM.
func (*Student) TableName() string { return "students" }

func (*Student) Kind() Kind { return KindStudent }

func (*Student) KeyField() string { return "email" }

func (s *Student) Key() string { return s.Email }

func (*Student) New() *Student { return &Student{} }

func (s *Student) Clone() *Student {
	c := *s
	return &c
}
