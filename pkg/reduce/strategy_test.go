package reduce

import (
	"errors"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name string
		eta  bool
		want Strategy
	}{
		{"name", false, CallByNameStrategy()},
		{"cbn", false, CallByNameStrategy()},
		{"bv", false, CallByValueStrategy()},
		{"value", false, CallByValueStrategy()},
		{"normal", true, NormalStrategy(true)},
		{" NO ", false, NormalStrategy(false)},
		{"ao", true, ApplicativeStrategy(true)},
		{"applicative", false, ApplicativeStrategy(false)},
		{"hs", true, HeadSpineStrategy(true)},
		{"head", false, HeadSpineStrategy(false)},
	}

	for _, tt := range tests {
		got, err := ParseStrategy(tt.name, tt.eta)
		if err != nil {
			t.Errorf("ParseStrategy(%q, %v): %v", tt.name, tt.eta, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q, %v) = %v, want %v", tt.name, tt.eta, got, tt.want)
		}
	}

	if _, err := ParseStrategy("lazy", false); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
	if _, err := ParseStrategy("cbv", true); !errors.Is(err, ErrEtaUnsupported) {
		t.Errorf("expected ErrEtaUnsupported, got %v", err)
	}
}

func TestStrategyString(t *testing.T) {
	if got := NormalStrategy(true).String(); got != "normal+eta" {
		t.Errorf("String = %q", got)
	}
	if got := CallByValueStrategy().String(); got != "value" {
		t.Errorf("String = %q", got)
	}
	if got := Kind(9).String(); got != "Kind(9)" {
		t.Errorf("String = %q", got)
	}

	// Every name round-trips through ParseStrategy.
	for _, s := range Strategies(false) {
		back, err := ParseStrategy(s.Kind.String(), false)
		if err != nil || back != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s.Kind, back, err)
		}
	}
}

func TestStrategies(t *testing.T) {
	all := Strategies(true)
	if len(all) != 5 {
		t.Fatalf("got %d strategies, want 5", len(all))
	}
	for i, s := range all {
		if s.Kind != Kind(i) {
			t.Errorf("strategy %d has kind %s", i, s.Kind)
		}
		if err := s.Validate(); err != nil {
			t.Errorf("%s: %v", s, err)
		}
		if s.Eta == s.Kind.Weak() {
			t.Errorf("%s: η should be set exactly on the strong strategies", s)
		}
	}
}
