package cached

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-service/internal/adapter/cache"
	domain "user-service/internal/domain/user"
	"user-service/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps the database repository and keeps single users in the cache.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
	// writes counts completed updates and deletes; a read that overlaps one
	// does not leave its result in the cache.
	writes atomic.Uint64
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// List delegates to the DB repository.
func (r *CachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.dbRepo.List(ctx)
}

// Create delegates to the DB repository.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
// Missing users are not cached.
func (r *CachedUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	cachedUser, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to database", zap.String("id", id), zap.Error(err))
	} else if cachedUser != nil {
		r.log.Debug("user retrieved from cache", zap.String("id", id))
		return cachedUser, nil
	}

	// concurrent misses for the same id share one database read
	result, err, _ := r.group.Do(id, func() (any, error) {
		gen := r.writes.Load()
		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil || u == nil {
			return u, err
		}
		r.fill(ctx, u, gen)
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// Update updates the user in DB and invalidates the cache.
func (r *CachedUserRepository) Update(ctx context.Context, id string, changes domain.Changes) (*domain.User, error) {
	updated, err := r.dbRepo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	r.written(ctx, id, updated, "update")
	return updated, nil
}

// Delete deletes the user from DB and invalidates the cache.
func (r *CachedUserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	deleted, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	r.written(ctx, id, deleted, "delete")
	return deleted, nil
}

// fill caches u unless a write completed after the read began. A write that
// lands between the check and the Set is caught by the second check.
func (r *CachedUserRepository) fill(ctx context.Context, u *domain.User, gen uint64) {
	if r.writes.Load() != gen {
		r.log.Debug("skipping cache fill after concurrent write", zap.String("id", u.ID))
		return
	}
	if err := r.cache.Set(ctx, u); err != nil {
		r.log.Warn("failed to cache user", zap.String("id", u.ID), zap.Error(err))
		return
	}
	if r.writes.Load() != gen {
		r.invalidate(ctx, u.ID, "fill")
	}
}

// written runs after a successful database write. The stored id can differ
// from the requested one in case only.
func (r *CachedUserRepository) written(ctx context.Context, id string, u *domain.User, op string) {
	r.writes.Add(1)
	r.group.Forget(id)
	r.invalidate(ctx, id, op)
	if u != nil && u.ID != id {
		r.invalidate(ctx, u.ID, op)
	}
}

func (r *CachedUserRepository) invalidate(ctx context.Context, id, op string) {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache", zap.String("op", op), zap.String("id", id), zap.Error(err))
	}
}
