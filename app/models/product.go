package models

import (
	"errors"
	"hash/fnv"
	"strconv"

	"github.com/shashiranjanraj/shopservice/pkg/orm"
)

// ErrShopNotBound is returned by LoadShop when the product was neither
// loaded with its shop nor given a loader.
var ErrShopNotBound = errors.New("models: product has no shop loader")

// Product belongs to exactly one shop. The shop row is not fetched with the
// product; call LoadShop to resolve it.
type Product struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name   string `gorm:"size:255;not null"          json:"name"`
	ShopID int64  `gorm:"column:shop_id;not null;index" json:"shopId"`
	Shop   *Shop  `gorm:"foreignKey:ShopID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"shop,omitempty"`

	shop *orm.Lazy[*Shop] `gorm:"-"`
}

func (Product) TableName() string { return "product" }

// SetShopLoader binds the function LoadShop calls on first access. An
// already-populated Shop field takes precedence.
func (p *Product) SetShopLoader(fn func() (*Shop, error)) {
	p.shop = orm.LazyFn(fn)
}

// LoadShop returns the owning shop, fetching it at most once.
func (p *Product) LoadShop() (*Shop, error) {
	if p.Shop != nil {
		return p.Shop, nil
	}
	if p.shop == nil {
		return nil, ErrShopNotBound
	}
	s, err := p.shop.Get()
	if err != nil {
		return nil, err
	}
	p.Shop = s
	return s, nil
}

// ShopLoaded reports whether the shop has been resolved.
func (p *Product) ShopLoaded() bool {
	return p.Shop != nil || (p.shop != nil && p.shop.Loaded())
}

// Equal compares id, name and the shop reference.
func (p *Product) Equal(o *Product) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	return p.ID == o.ID && p.Name == o.Name && p.ShopID == o.ShopID
}

// HashCode is consistent with Equal.
func (p *Product) HashCode() uint64 {
	if p == nil {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatInt(p.ID, 10)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(p.Name))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strconv.FormatInt(p.ShopID, 10)))
	return h.Sum64()
}
