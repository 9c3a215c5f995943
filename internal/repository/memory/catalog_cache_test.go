package memory

import (
	"context"
	"testing"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type countingFeatureRepo struct {
	tierQueries int
	features    []*entity.Feature
}

func (r *countingFeatureRepo) Create(ctx context.Context, f *entity.Feature) error { return nil }
func (r *countingFeatureRepo) Update(ctx context.Context, f *entity.Feature) error { return nil }
func (r *countingFeatureRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (r *countingFeatureRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error) {
	return nil, nil
}

func (r *countingFeatureRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error) {
	return r.features, nil
}

func (r *countingFeatureRepo) FindBySlug(ctx context.Context, slug string) (*entity.Feature, error) {
	return nil, nil
}

func (r *countingFeatureRepo) FindActiveByTierAndSlugs(ctx context.Context, tier string, slugs []string) ([]*entity.Feature, error) {
	r.tierQueries++
	return r.features, nil
}

func TestCachedRepositoryServesRepeatsFromCache(t *testing.T) {
	inner := &countingFeatureRepo{features: []*entity.Feature{{Slug: "auth.basic"}}}
	repo := NewCachedFeatureRepository(inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := repo.FindActiveByTierAndSlugs(ctx, "starter", []string{"auth.basic"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
	}
	if inner.tierQueries != 1 {
		t.Errorf("inner queried %d times, want 1", inner.tierQueries)
	}

}

// Slug order must not fragment the cache key.
func TestCachedRepositoryKeyIgnoresSlugOrder(t *testing.T) {
	inner := &countingFeatureRepo{features: []*entity.Feature{{Slug: "a"}, {Slug: "b"}}}
	repo := NewCachedFeatureRepository(inner)
	ctx := context.Background()

	if _, err := repo.FindActiveByTierAndSlugs(ctx, "growth", []string{"b", "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindActiveByTierAndSlugs(ctx, "growth", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if inner.tierQueries != 1 {
		t.Errorf("inner queried %d times, want 1", inner.tierQueries)
	}
}

func TestCachedRepositoryWriteFlushes(t *testing.T) {
	inner := &countingFeatureRepo{features: []*entity.Feature{{Slug: "auth.basic"}}}
	repo := NewCachedFeatureRepository(inner)
	ctx := context.Background()

	if _, err := repo.FindActiveByTierAndSlugs(ctx, "starter", []string{"auth.basic"}); err != nil {
		t.Fatal(err)
	}
	if inner.tierQueries != 1 {
		t.Fatalf("inner queried %d times, want 1", inner.tierQueries)
	}

	if err := repo.Update(ctx, &entity.Feature{Slug: "auth.basic"}); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.FindActiveByTierAndSlugs(ctx, "starter", []string{"auth.basic"}); err != nil {
		t.Fatal(err)
	}
	if inner.tierQueries != 2 {
		t.Errorf("inner queried %d times after update, want 2 (stale entry served)", inner.tierQueries)
	}
}
