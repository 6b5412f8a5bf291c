package repository

import (
	"context"
	stderrors "errors"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/domain"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// filterRow mirrors the filters table. Flag columns are nullable integers and
// keyword columns hold KeywordSeparator-joined text.
type filterRow struct {
	ID         string  `gorm:"primaryKey;size:64"`
	Audio      *int64  `gorm:"column:audio"`
	Video      *int64  `gorm:"column:video"`
	Photo      *int64  `gorm:"column:photo"`
	Sticker    *int64  `gorm:"column:sticker"`
	Document   *int64  `gorm:"column:document"`
	Hashtag    *int64  `gorm:"column:hashtag"`
	Link       *int64  `gorm:"column:link"`
	Contain    *string `gorm:"column:contain;type:text"`
	NotContain *string `gorm:"column:notcontain;type:text"`
}

func (filterRow) TableName() string {
	return "filters"
}

func (row *filterRow) toRecord() *domain.Record {
	return &domain.Record{
		ID:         row.ID,
		Audio:      flagFromColumn(row.Audio),
		Video:      flagFromColumn(row.Video),
		Photo:      flagFromColumn(row.Photo),
		Sticker:    flagFromColumn(row.Sticker),
		Document:   flagFromColumn(row.Document),
		Hashtag:    flagFromColumn(row.Hashtag),
		Link:       flagFromColumn(row.Link),
		Contain:    decodeKeywords(lo.FromPtr(row.Contain)),
		NotContain: decodeKeywords(lo.FromPtr(row.NotContain)),
	}
}

func rowFromRecord(record *domain.Record) *filterRow {
	return &filterRow{
		ID:         record.ID,
		Audio:      flagToColumn(record.Audio),
		Video:      flagToColumn(record.Video),
		Photo:      flagToColumn(record.Photo),
		Sticker:    flagToColumn(record.Sticker),
		Document:   flagToColumn(record.Document),
		Hashtag:    flagToColumn(record.Hashtag),
		Link:       flagToColumn(record.Link),
		Contain:    keywordsToColumn(record.Contain),
		NotContain: keywordsToColumn(record.NotContain),
	}
}

func flagFromColumn(v *int64) bool {
	return v != nil && *v != 0
}

func flagToColumn(on bool) *int64 {
	if !on {
		return nil
	}
	return lo.ToPtr(int64(1))
}

func keywordsToColumn(keywords []string) *string {
	if len(keywords) == 0 {
		return nil
	}
	return lo.ToPtr(encodeKeywords(keywords))
}

// GormStorage implements Repository on a relational table
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage creates the filters table if needed and returns the repository
func NewGormStorage(db *gorm.DB) (*GormStorage, error) {
	if err := db.AutoMigrate(&filterRow{}); err != nil {
		return nil, oops.With("context", "failed to migrate filters table").Wrap(err)
	}
	return &GormStorage{db: db}, nil
}

func (s *GormStorage) GetFilter(ctx context.Context, filterID string) (*domain.Record, error) {
	var row filterRow
	err := s.db.WithContext(ctx).Where("id = ?", filterID).Take(&row).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrFilterNotFound
	}
	if err != nil {
		return nil, oops.With("filter_id", filterID, "context", "failed to query filter").Wrap(err)
	}
	return row.toRecord(), nil
}

func (s *GormStorage) GetAllFilters(ctx context.Context) ([]*domain.Record, error) {
	var rows []filterRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, oops.With("context", "failed to query filters").Wrap(err)
	}
	return lo.Map(rows, func(row filterRow, _ int) *domain.Record {
		return row.toRecord()
	}), nil
}

func (s *GormStorage) SaveFilter(ctx context.Context, record *domain.Record) error {
	if record == nil || record.ID == "" {
		return errors.ErrInvalidRecord
	}
	row := rowFromRecord(record)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
	if err != nil {
		return oops.With("filter_id", record.ID, "context", "failed to save filter").Wrap(err)
	}
	return nil
}

func (s *GormStorage) DeleteFilter(ctx context.Context, filterID string) error {
	res := s.db.WithContext(ctx).Delete(&filterRow{}, "id = ?", filterID)
	if res.Error != nil {
		return oops.With("filter_id", filterID, "context", "failed to delete filter").Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrFilterNotFound
	}
	return nil
}
