package reduce

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a reduction strategy.
type Kind int

const (
	// CallByName reduces the leftmost-outermost redex, never under a λ.
	CallByName Kind = iota
	// CallByValue reduces arguments before substitution, never under a λ.
	CallByValue
	// Normal is leftmost-outermost reduction to full normal form.
	Normal
	// Applicative is leftmost-innermost reduction to full normal form.
	Applicative
	// HeadSpine contracts the head redex and reduces under head λs only.
	HeadSpine
)

var kindNames = map[Kind]string{
	CallByName:  "name",
	CallByValue: "value",
	Normal:      "normal",
	Applicative: "applicative",
	HeadSpine:   "head",
}

var kindAliases = map[string]Kind{
	"name":        CallByName,
	"cbn":         CallByName,
	"bn":          CallByName,
	"value":       CallByValue,
	"cbv":         CallByValue,
	"bv":          CallByValue,
	"normal":      Normal,
	"no":          Normal,
	"applicative": Applicative,
	"ao":          Applicative,
	"head":        HeadSpine,
	"hs":          HeadSpine,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Weak reports whether k stops at abstraction boundaries.
func (k Kind) Weak() bool {
	return k == CallByName || k == CallByValue
}

var (
	ErrUnknownStrategy = errors.New("unknown reduction strategy")
	ErrEtaUnsupported  = errors.New("η-reduction needs a strategy that reduces under λ")
)

// Strategy selects a reduction function and its options.
type Strategy struct {
	Kind Kind
	// Eta enables λx.(e x) → e when x is not free in e.
	Eta bool
}

func CallByNameStrategy() Strategy          { return Strategy{Kind: CallByName} }
func CallByValueStrategy() Strategy         { return Strategy{Kind: CallByValue} }
func NormalStrategy(eta bool) Strategy      { return Strategy{Kind: Normal, Eta: eta} }
func ApplicativeStrategy(eta bool) Strategy { return Strategy{Kind: Applicative, Eta: eta} }
func HeadSpineStrategy(eta bool) Strategy   { return Strategy{Kind: HeadSpine, Eta: eta} }

// Validate rejects unknown kinds and η on the weak strategies.
func (s Strategy) Validate() error {
	if _, ok := kindNames[s.Kind]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, s.Kind)
	}
	if s.Eta && s.Kind.Weak() {
		return fmt.Errorf("%w: %s", ErrEtaUnsupported, s.Kind)
	}
	return nil
}

func (s Strategy) String() string {
	if s.Eta {
		return s.Kind.String() + "+eta"
	}
	return s.Kind.String()
}

// ParseStrategy parses a strategy name such as "normal" or "cbv".
func ParseStrategy(name string, eta bool) (Strategy, error) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	s := Strategy{Kind: kind, Eta: eta}
	if err := s.Validate(); err != nil {
		return Strategy{}, err
	}
	return s, nil
}

// Strategies lists every strategy in Kind order. eta is applied to the
// strategies that support it.
func Strategies(eta bool) []Strategy {
	return []Strategy{
		CallByNameStrategy(),
		CallByValueStrategy(),
		NormalStrategy(eta),
		ApplicativeStrategy(eta),
		HeadSpineStrategy(eta),
	}
}
