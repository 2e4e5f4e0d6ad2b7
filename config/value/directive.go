package value

import (
	"github.com/datarhei/gpoint"
)

// Directive is a C conversion directive for %g, e.g. "%+08.3g".
type Directive string

func NewDirective(p *string, val string) *Directive {
	*p = val

	return (*Directive)(p)
}

// Set stores the directive as given. Use Validate to check it.
func (d *Directive) Set(val string) error {
	*d = Directive(val)
	return nil
}

func (d *Directive) String() string {
	return string(*d)
}

func (d *Directive) Validate() error {
	_, err := gpoint.ParseSpec(string(*d))
	return err
}

func (d *Directive) IsEmpty() bool {
	return len(string(*d)) == 0
}

// Spec returns the parsed directive.
func (d *Directive) Spec() (gpoint.Spec, error) {
	return gpoint.ParseSpec(string(*d))
}
