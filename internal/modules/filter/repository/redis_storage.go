package repository

import (
	"context"
	stderrors "errors"

	"github.com/redis/go-redis/v9"
	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/domain"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/samber/oops"
)

const (
	redisFilterPrefix = "filter:"
	redisFilterIndex  = "filters"
)

// RedisStorage implements Repository with one hash per filter and a set
// indexing the known identifiers
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage wraps an open redis client
func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func redisKey(filterID string) string {
	return redisFilterPrefix + filterID
}

func recordFromHash(filterID string, fields map[string]string) *domain.Record {
	return &domain.Record{
		ID:         filterID,
		Audio:      flagFromString(fields["audio"]),
		Video:      flagFromString(fields["video"]),
		Photo:      flagFromString(fields["photo"]),
		Sticker:    flagFromString(fields["sticker"]),
		Document:   flagFromString(fields["document"]),
		Hashtag:    flagFromString(fields["hashtag"]),
		Link:       flagFromString(fields["link"]),
		Contain:    decodeKeywords(fields["contain"]),
		NotContain: decodeKeywords(fields["notcontain"]),
	}
}

func hashFromRecord(record *domain.Record) map[string]any {
	return map[string]any{
		"id":         record.ID,
		"audio":      flagToString(record.Audio),
		"video":      flagToString(record.Video),
		"photo":      flagToString(record.Photo),
		"sticker":    flagToString(record.Sticker),
		"document":   flagToString(record.Document),
		"hashtag":    flagToString(record.Hashtag),
		"link":       flagToString(record.Link),
		"contain":    encodeKeywords(record.Contain),
		"notcontain": encodeKeywords(record.NotContain),
	}
}

func (s *RedisStorage) GetFilter(ctx context.Context, filterID string) (*domain.Record, error) {
	fields, err := s.client.HGetAll(ctx, redisKey(filterID)).Result()
	if err != nil {
		return nil, oops.With("filter_id", filterID, "context", "failed to read filter hash").Wrap(err)
	}
	if len(fields) == 0 {
		return nil, errors.ErrFilterNotFound
	}
	return recordFromHash(filterID, fields), nil
}

func (s *RedisStorage) GetAllFilters(ctx context.Context) ([]*domain.Record, error) {
	ids, err := s.client.SMembers(ctx, redisFilterIndex).Result()
	if err != nil {
		return nil, oops.With("context", "failed to read filter index").Wrap(err)
	}

	records := make([]*domain.Record, 0, len(ids))
	for _, id := range ids {
		record, err := s.GetFilter(ctx, id)
		if stderrors.Is(err, errors.ErrFilterNotFound) {
			// index entry outlived its hash
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *RedisStorage) SaveFilter(ctx context.Context, record *domain.Record) error {
	if record == nil || record.ID == "" {
		return errors.ErrInvalidRecord
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisKey(record.ID), hashFromRecord(record))
		pipe.SAdd(ctx, redisFilterIndex, record.ID)
		return nil
	})
	if err != nil {
		return oops.With("filter_id", record.ID, "context", "failed to save filter hash").Wrap(err)
	}
	return nil
}

func (s *RedisStorage) DeleteFilter(ctx context.Context, filterID string) error {
	var deleted *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, redisKey(filterID))
		pipe.SRem(ctx, redisFilterIndex, filterID)
		return nil
	})
	if err != nil {
		return oops.With("filter_id", filterID, "context", "failed to delete filter hash").Wrap(err)
	}
	if deleted.Val() == 0 {
		return errors.ErrFilterNotFound
	}
	return nil
}
