package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sandeepkv93/locrem/internal/model"
	"github.com/sandeepkv93/locrem/internal/observability"
	"github.com/sandeepkv93/locrem/internal/storage"
)

const DefaultCacheSize = 128

type LocalRepository struct {
	store   storage.Store
	cache   *lru.Cache[string, model.Reminder]
	logger  *slog.Logger
	metrics *observability.Metrics
}

type Option func(*LocalRepository)

func WithLogger(logger *slog.Logger) Option {
	return func(r *LocalRepository) { r.logger = observability.OrDiscard(logger) }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(r *LocalRepository) { r.metrics = m }
}

func NewLocalRepository(store storage.Store, cacheSize int, opts ...Option) (*LocalRepository, error) {
	if store == nil {
		return nil, errors.New("data: nil store")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, model.Reminder](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create reminder cache: %w", err)
	}
	r := &LocalRepository{
		store:  store,
		cache:  cache,
		logger: observability.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *LocalRepository) GetReminders(ctx context.Context) Result[[]model.Reminder] {
	rows, err := r.store.List(ctx, storage.ReminderListFilter{})
	if err != nil {
		r.logger.Error("list reminders failed", "err", err)
		r.count(func(m *observability.Metrics) { m.LoadFailures.Inc() })
		return Error[[]model.Reminder](err.Error())
	}
	out := make([]model.Reminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRecord(row))
	}
	r.count(func(m *observability.Metrics) { m.RemindersLoaded.Add(float64(len(out))) })
	return Success(out)
}

func (r *LocalRepository) SaveReminder(ctx context.Context, reminder model.Reminder) {
	if err := r.store.Upsert(ctx, toRecord(reminder)); err != nil {
		r.cache.Remove(reminder.ID)
		r.logger.Error("save reminder failed", "id", reminder.ID, "err", err)
		r.count(func(m *observability.Metrics) { m.WriteFailures.Inc() })
		return
	}
	r.cache.Add(reminder.ID, cloneReminder(reminder))
	r.logger.Debug("reminder saved", "id", reminder.ID)
	r.count(func(m *observability.Metrics) { m.RemindersSaved.Inc() })
}

func (r *LocalRepository) GetReminder(ctx context.Context, id string) Result[model.Reminder] {
	if cached, ok := r.cache.Get(id); ok {
		r.count(func(m *observability.Metrics) { m.CacheHits.Inc() })
		return Success(cloneReminder(cached))
	}
	r.count(func(m *observability.Metrics) { m.CacheMisses.Inc() })

	row, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Error[model.Reminder](MessageReminderNotFound)
		}
		r.logger.Error("get reminder failed", "id", id, "err", err)
		r.count(func(m *observability.Metrics) { m.LoadFailures.Inc() })
		return Error[model.Reminder](err.Error())
	}
	reminder := fromRecord(row)
	r.cache.Add(id, cloneReminder(reminder))
	return Success(reminder)
}

func (r *LocalRepository) DeleteReminder(ctx context.Context, id string) {
	r.cache.Remove(id)
	if err := r.store.Delete(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		r.logger.Error("delete reminder failed", "id", id, "err", err)
		r.count(func(m *observability.Metrics) { m.WriteFailures.Inc() })
	}
}

func (r *LocalRepository) DeleteAllReminders(ctx context.Context) {
	r.cache.Purge()
	if err := r.store.DeleteAll(ctx); err != nil {
		r.logger.Error("delete all reminders failed", "err", err)
		r.count(func(m *observability.Metrics) { m.WriteFailures.Inc() })
	}
}

func (r *LocalRepository) count(fn func(*observability.Metrics)) {
	if r.metrics != nil {
		fn(r.metrics)
	}
}

// cloneReminder detaches the coordinate pointers so cached entries are not
// shared with callers.
func cloneReminder(in model.Reminder) model.Reminder {
	out := in
	if in.Latitude != nil {
		out.Latitude = model.Float64(*in.Latitude)
	}
	if in.Longitude != nil {
		out.Longitude = model.Float64(*in.Longitude)
	}
	return out
}

func toRecord(in model.Reminder) storage.Reminder {
	return storage.Reminder{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}
}

func fromRecord(in storage.Reminder) model.Reminder {
	return model.Reminder{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}
}
