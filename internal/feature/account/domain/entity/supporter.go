package entity

// Supporter is an individual funding students.
type Supporter struct {
	Account `bson:",inline"`

	Email      string `gorm:"uniqueIndex;size:255;not null" bson:"email" json:"email"`
	Name       string `gorm:"size:255;not null" bson:"name" json:"name"`
	Country    string `gorm:"size:128;not null" bson:"country" json:"country"`
	Occupation string `gorm:"size:255" bson:"occupation,omitempty" json:"occupation,omitempty"`
	Motivation string `gorm:"type:text" bson:"motivation,omitempty" json:"motivation,omitempty"`
}

// TableName returns the table name for GORM.
func (*Supporter) TableName() string { return "supporters" }

func (*Supporter) Kind() Kind { return KindSupporter }

func (*Supporter) KeyField() string { return "email" }

func (s *Supporter) Key() string { return s.Email }

func (*Supporter) New() *Supporter { return &Supporter{} }

func (s *Supporter) Clone() *Supporter {
	c := *s
	return &c
}
