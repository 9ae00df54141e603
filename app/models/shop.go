package models

import (
	"hash/fnv"
	"strconv"
)

// Shop owns zero or more products.
type Shop struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"size:255;not null"        json:"name"`
	Products []Product `gorm:"foreignKey:ShopID"        json:"products,omitempty"`
}

func (Shop) TableName() string { return "shop" }

// Equal compares identity and name. Products are not part of a shop's value.
func (s *Shop) Equal(o *Shop) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	return s.ID == o.ID && s.Name == o.Name
}

// HashCode is consistent with Equal.
func (s *Shop) HashCode() uint64 {
	if s == nil {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatInt(s.ID, 10)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(s.Name))
	return h.Sum64()
}
