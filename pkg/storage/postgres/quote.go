package postgres

import (
	"context"
	"errors"

	"krxmon/internal/krx/memorystore"

	"gorm.io/gorm/clause"
)

// ErrDuplicateQuote reports that an identical (name, fetched_at) row
// already exists; the insert was skipped.
var ErrDuplicateQuote = errors.New("duplicate quote skipped")

func (p *PostgresClient) InsertQuote(ctx context.Context, record *QuoteRecord) error {
	tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "name"},
			{Name: "fetched_at"},
		},
		DoNothing: true,
	}).Create(record)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrDuplicateQuote
	}

	return nil
}

// ToQuoteRecord converts a store snapshot into a row for archival.
// Only snapshots carrying a price are convertible.
func ToQuoteRecord(name, code string, snap memorystore.Snapshot) (*QuoteRecord, error) {
	if !snap.HasPrice {
		return nil, errors.New("snapshot has no price")
	}

	return &QuoteRecord{
		Name:      name,
		Code:      code,
		Price:     snap.Price,
		ChangeAbs: snap.ChangeAbs,
		ChangePct: snap.ChangePct,
		Trend:     snap.Trend.String(),
		FetchedAt: snap.UpdatedAt,
	}, nil
}
