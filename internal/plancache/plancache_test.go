package plancache

import (
	"os"
	"testing"

	"github.com/streamkit-io/relexpr/plan"
	"github.com/streamkit-io/relexpr/repr"
)

func TestTypCachesAcrossCalls(t *testing.T) {
	dir, err := os.MkdirTemp("", "plancache-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	cache, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	typ := repr.NewRelationType(repr.Column(repr.ScalarTypeInt32, false))
	tree := plan.Constant([]plan.Row{{repr.Int32(1)}}, typ).Distinct()

	got1, err := cache.Typ(tree)
	if err != nil {
		t.Fatal(err)
	}
	if !got1.Equal(typ) {
		t.Errorf("first Typ() = %+v, want %+v", got1, typ)
	}

	got2, err := cache.Typ(tree)
	if err != nil {
		t.Fatal(err)
	}
	if !got2.Equal(typ) {
		t.Errorf("second (cached) Typ() = %+v, want %+v", got2, typ)
	}
}

func TestTypDistinguishesStructurallyDifferentTrees(t *testing.T) {
	dir, err := os.MkdirTemp("", "plancache-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	cache, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	typ := repr.NewRelationType(repr.Column(repr.ScalarTypeInt32, false), repr.Column(repr.ScalarTypeInt32, false))
	rows := []plan.Row{{repr.Int32(1), repr.Int32(2)}}
	full := plan.Constant(rows, typ)
	projected := full.Project([]int{0})

	fullTyp, err := cache.Typ(full)
	if err != nil {
		t.Fatal(err)
	}
	projectedTyp, err := cache.Typ(projected)
	if err != nil {
		t.Fatal(err)
	}

	if fullTyp.Arity() == projectedTyp.Arity() {
		t.Errorf("expected differing arities, got %d == %d", fullTyp.Arity(), projectedTyp.Arity())
	}
}

func TestInvalidateRemovesCachedEntry(t *testing.T) {
	dir, err := os.MkdirTemp("", "plancache-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	cache, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	typ := repr.NewRelationType(repr.Column(repr.ScalarTypeInt32, false))
	tree := plan.Constant(nil, typ)

	if _, err := cache.Typ(tree); err != nil {
		t.Fatal(err)
	}
	if err := cache.Invalidate(tree); err != nil {
		t.Fatal(err)
	}
	got, err := cache.Typ(tree)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(typ) {
		t.Errorf("Typ() after invalidate = %+v, want %+v", got, typ)
	}
}
