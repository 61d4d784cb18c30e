package domain

import (
	"database/sql/driver"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Product categories for the dual-brand storefront.
const (
	CategoryGift = "gift"
	CategoryTech = "tech"
)

// StringList stores a list of image URIs as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(v, l)
	case string:
		return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported StringList source type")
	}
}

// Product is a catalog item. Price is kept in main currency units and is
// normalized once at the ingestion boundary (see catalog.ParseDocument).
type Product struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"index" json:"name"`
	Price       float64    `json:"price"`
	Images      StringList `gorm:"type:text" json:"images"`
	Category    string     `gorm:"size:32;index" json:"category"`
	Description string     `gorm:"size:4096" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MainImage returns the first image URI, or empty when none are set.
func (p Product) MainImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
