package unitofwork

import (
	"context"
	"testing"
)

// The factory owns one feature cache; every unit of work outside a transaction
// must hand back that same instance, so a write through any unit of work
// invalidates the reads every other consumer sees.
func TestFactorySharesFeatureCache(t *testing.T) {
	f := NewRepositoryFactory(nil)

	shared := f.FeatureRepository()
	if shared == nil {
		t.Fatal("FeatureRepository() = nil")
	}

	uow := f.NewUnitOfWork(context.Background())
	if uow.FeatureRepository() != shared {
		t.Error("unit of work returned a different feature repository than the factory's shared cache")
	}

	other := f.NewUnitOfWork(context.Background())
	if other.FeatureRepository() != shared {
		t.Error("second unit of work does not share the feature cache")
	}
}
