// Package entity defines the domain entities for the account feature.
package entity

import (
	"strings"
	"time"
)

// Kind identifies one of the closed account record shapes.
type Kind string

const (
	KindStudent   Kind = "student"
	KindSchool    Kind = "school"
	KindSupporter Kind = "supporter"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Account holds the fields every stored record carries.
// ID and CreatedAt are assigned once at creation and never change.
type Account struct {
	// ID is the opaque identifier assigned at creation (UUID v4).
	ID string `gorm:"primaryKey;size:36" bson:"_id" json:"id"`

	// Password is the derived credential hash. It never holds plaintext.
	Password string `gorm:"size:255;not null" bson:"password" json:"password"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
}

// Base returns the common account part of a record.
func (a *Account) Base() *Account {
	return a
}

// Record is the capability set shared by every account kind.
// Kind, KeyField and New must not dereference the receiver, so generic code
// can call them on the zero value of T.
type Record[T any] interface {
	// Kind returns the record's kind.
	Kind() Kind
	// KeyField returns the column / document field holding the identifying key.
	KeyField() string
	// Key returns the identifying key.
	Key() string
	// Base returns the embedded common account fields.
	Base() *Account
	// Clone returns a deep copy.
	Clone() T
	// New returns an empty record of the same kind.
	New() T
}

// NormalizeKey trims and lower-cases an identifying key (an email address).
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
