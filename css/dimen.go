package css

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/tyse/core/dimen"
	. "github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	dimenUnset    uint32 = 0x0005 // "none", e.g. for max-width
	kindMask      uint32 = 0x000f

	// Flags for content dependent dimensions
	DimenContentMax uint32 = 0x0010
	DimenContentMin uint32 = 0x0020
	DimenContentFit uint32 = 0x0030
	contentMask     uint32 = 0x00f0

	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for dimensions of attributes like width or margins.
type DimenT struct {
	d       dimen.DU
	percent Percent
	flags   uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| None
	| JustDimen dimen
	| Percentage Percent
	| ContentRel Min
	| ContentRel Max
	| ContentRel Fit
*/

// Auto is the dimension of "auto", to be determined by layout.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Inherit is the dimension of "inherit".
func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

// Initial is the dimension of "initial".
func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// None is the dimension of "none", i.e. an unconstrained limit.
func None() DimenT {
	return DimenT{flags: dimenUnset}
}

// JustDimen creates a dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a dimension with a %-relative value.
func Percentage(n Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// Content creates a content dependent dimension; flag is one of
// DimenContentMax, DimenContentMin or DimenContentFit.
func Content(flag uint32) DimenT {
	return DimenT{flags: flag & contentMask}
}

func (d DimenT) String() string {
	var du dimen.DU
	var p Percent
	switch m := d.Match(); m {
	case m.Just(&du):
		return fmt.Sprint(du)
	case m.Percentage(&p):
		return fmt.Sprint(p)
	case m.IsKind(Auto()):
		return "auto"
	case m.IsKind(Inherit()):
		return "inherit"
	case m.IsKind(Initial()):
		return "initial"
	case m.IsKind(None()):
		return "none"
	case m.IsKind(Content(DimenContentFit)):
		return "content"
	}
	return "?"
}

// units maps unit suffixes to their size in points. Unitless numbers are
// taken as points, the native unit of the view layer.
var units = []struct {
	suffix string
	pt     float64
}{
	{"pt", 1},
	{"px", 0.75},
	{"in", 72.27},
	{"cm", 28.45},
	{"mm", 2.845},
	{"", 1},
}

// ParseDimen returns a dimension from a raw attribute value.
func ParseDimen(p style.Property) (DimenT, error) {
	s := string(p.Normalized())
	switch s {
	case "":
		return DimenT{}, nil
	case "auto":
		return Auto(), nil
	case "inherit":
		return Inherit(), nil
	case "initial":
		return Initial(), nil
	case "none":
		return None(), nil
	case "min-content":
		return Content(DimenContentMin), nil
	case "max-content":
		return Content(DimenContentMax), nil
	case "fit-content":
		return Content(DimenContentFit), nil
	}
	if strings.HasSuffix(s, "%") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
		if err != nil {
			return DimenT{}, fmt.Errorf("illegal percentage '%s': %w", p, err)
		}
		return Percentage(FromInt(n)), nil
	}
	for _, u := range units {
		if !strings.HasSuffix(s, u.suffix) {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSuffix(s, u.suffix), 64)
		if err != nil {
			break
		}
		return JustDimen(dimen.DU(x * u.pt * float64(dimen.PT))), nil
	}
	return DimenT{}, fmt.Errorf("illegal dimension '%s'", p)
}

// IsNone is true for an empty DimenT.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// ---------------------------------------------------------------------------

// Match returns a matcher for d, to be used in a switch statement:
//
//     var du dimen.DU
//     switch m := d.Match(); m {
//     case m.Just(&du):
//         …
//     case m.IsKind(Auto()):
//         …
//     }
//
// Every matching method returns the matcher itself on a match and nil
// otherwise.
func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

// Matcher matches dimensions by kind. It is created with DimenT.Match().
type Matcher struct {
	dimen DimenT
}

// IsKind matches if the dimension is of the same kind as d. All
// content dependent dimensions are of one kind.
func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case (m.dimen.flags&kindMask != 0) && (m.dimen.flags&kindMask) == (d.flags&kindMask):
		return m
	case (m.dimen.flags&relativeMask > 0) && (d.flags&relativeMask > 0):
		if (m.dimen.flags&dimenPercent > 0) != (d.flags&dimenPercent > 0) {
			return nil
		}
		return m
	case (m.dimen.flags&contentMask > 0) && (d.flags&contentMask > 0):
		return m
	}
	return nil
}

// Just matches an absolute dimension and stores its value in du,
// if du is not nil.
func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&kindMask == dimenAbsolute {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

// Percentage matches a relative dimension and stores its value in p,
// if p is not nil.
func (m *Matcher) Percentage(p *Percent) *Matcher {
	if m.dimen.flags&relativeMask == dimenPercent {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}
