package engine

import "testing"

func TestRegisterTunablesRoundTripsValues(t *testing.T) {
	opts := DefaultOptions()
	params := registerTunables(&opts)

	found := false
	for _, p := range params {
		if p.Descr != "NullMoveBaseR" {
			continue
		}
		found = true
		if got := p.Get(); got != opts.NullMoveBaseR {
			t.Errorf("expected Get() to read the live field (%d), got %d", opts.NullMoveBaseR, got)
		}
		p.Set(5)
		if opts.NullMoveBaseR != 5 {
			t.Errorf("expected Set(5) to write through to the live field, got %d", opts.NullMoveBaseR)
		}
		if got := p.Get(); got != 5 {
			t.Errorf("expected Get() to reflect the write, got %d", got)
		}
	}
	if !found {
		t.Fatal("expected NullMoveBaseR to be registered")
	}
}

func TestRegisterTunablesBoolsAreZeroOrOne(t *testing.T) {
	opts := DefaultOptions()
	params := registerTunables(&opts)

	for _, p := range params {
		if p.Descr != "UseNullMove" {
			continue
		}
		if p.Min != 0 || p.Max != 1 {
			t.Fatalf("expected a bool tunable to report bounds [0,1], got [%d,%d]", p.Min, p.Max)
		}
		p.Set(0)
		if opts.UseNullMove {
			t.Error("expected Set(0) to clear the bool field")
		}
		p.Set(1)
		if !opts.UseNullMove {
			t.Error("expected Set(1) to set the bool field")
		}
		return
	}
	t.Fatal("expected UseNullMove to be registered")
}

func TestEngineConfigureClampsOutOfRangeOverrides(t *testing.T) {
	e := &Engine{opts: DefaultOptions()}
	e.Configure(map[string]int{"NullMoveBaseR": 99, "FutilityMaxDepth": -5})

	if e.opts.NullMoveBaseR != 8 {
		t.Errorf("expected an over-range override to clamp to the max (8), got %d", e.opts.NullMoveBaseR)
	}
	if e.opts.FutilityMaxDepth != 0 {
		t.Errorf("expected an under-range override to clamp to the min (0), got %d", e.opts.FutilityMaxDepth)
	}
}

func TestEngineConfigureIgnoresUnknownNames(t *testing.T) {
	e := &Engine{opts: DefaultOptions()}
	before := e.opts
	e.Configure(map[string]int{"NotARealTunable": 42})
	if e.opts != before {
		t.Error("expected an unknown override name to leave every option untouched")
	}
}
