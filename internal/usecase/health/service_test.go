package health

import (
	"context"
	"errors"
	"testing"
)

type fakeCatalog struct{ n int }

func (f fakeCatalog) Len() int { return f.n }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(fakeCatalog{n: 100}, fakePinger{})
	rep := svc.Check(context.Background())

	if rep.Status != StatusOK {
		t.Errorf("status = %q, want ok", rep.Status)
	}
	if rep.Catalog.Status != StatusOK || rep.Cache.Status != StatusOK {
		t.Errorf("components = %+v", rep)
	}
}

func TestCheck_EmptyCatalogFails(t *testing.T) {
	svc := New(fakeCatalog{n: 0}, nil)
	rep := svc.Check(context.Background())

	if rep.Status != StatusFailed {
		t.Errorf("status = %q, want failed", rep.Status)
	}
	if rep.Catalog.Status != StatusFailed {
		t.Errorf("catalog = %+v", rep.Catalog)
	}
}

func TestCheck_NilCacheIsDisabled(t *testing.T) {
	svc := New(fakeCatalog{n: 10}, nil)
	rep := svc.Check(context.Background())

	if rep.Status != StatusOK {
		t.Errorf("status = %q, want ok", rep.Status)
	}
	if rep.Cache.Status != StatusDisabled {
		t.Errorf("cache = %q, want disabled", rep.Cache.Status)
	}
}

func TestCheck_UnreachableCacheDegrades(t *testing.T) {
	svc := New(fakeCatalog{n: 10}, fakePinger{err: errors.New("connection refused")})
	rep := svc.Check(context.Background())

	if rep.Status != StatusDegraded {
		t.Errorf("status = %q, want degraded", rep.Status)
	}
	if rep.Cache.Status != StatusFailed || rep.Cache.Detail == "" {
		t.Errorf("cache = %+v", rep.Cache)
	}
}
