package postgres

import "time"

// QuoteRecord is one archived quote snapshot. One row per instrument per
// successful fetch; duplicates from re-reading the store between poll
// cycles are rejected by the unique index.
type QuoteRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index
	Name      string    `gorm:"type:text;not null;index:idx_quote_name;index:idx_name_fetched,unique"`
	FetchedAt time.Time `gorm:"not null;index:idx_name_fetched,unique"`

	Code string `gorm:"type:varchar(12);not null"`

	Price     int64   `gorm:"not null"` // closing price in won
	ChangeAbs int64   `gorm:"not null"`
	ChangePct float64 `gorm:"type:numeric;not null"`
	Trend     string  `gorm:"type:varchar(8);not null"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (QuoteRecord) TableName() string {
	return "quote_record"
}
