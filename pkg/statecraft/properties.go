package statecraft

import (
	"maps"
	"slices"
)

// Argument declares one positional argument.
type Argument struct {
	Name        string
	Required    bool
	Description string
}

// Keyword declares one keyword argument.
type Keyword struct {
	Name        string
	Required    bool
	Description string
}

// Example documents one way to invoke a unit. Command may contain the
// $COMMAND placeholder.
type Example struct {
	Command     string
	Description string
	Header      string
}

// Properties is the declared interface of a Class.
type Properties struct {
	Arguments   []Argument
	Keywords    map[string]Keyword
	Description string
	Examples    []Example
}

// Clone returns a deep copy.
func (p Properties) Clone() Properties {
	return Properties{
		Arguments:   slices.Clone(p.Arguments),
		Keywords:    maps.Clone(p.Keywords),
		Description: p.Description,
		Examples:    slices.Clone(p.Examples),
	}
}

// KeywordNames returns the declared keyword names in sorted order.
func (p Properties) KeywordNames() []string {
	return slices.Sorted(maps.Keys(p.Keywords))
}

// ParamOption configures an Argument or Keyword declaration.
type ParamOption interface {
	applyParam(*param)
}

// ExampleOption configures an Example declaration.
type ExampleOption interface {
	applyExample(*Example)
}

type param struct {
	required    bool
	description string
}

type paramFunc func(*param)

func (f paramFunc) applyParam(p *param) { f(p) }

// Required marks an argument or keyword as required.
func Required() ParamOption {
	return paramFunc(func(p *param) { p.required = true })
}

// Optional marks an argument or keyword as optional.
func Optional() ParamOption {
	return paramFunc(func(p *param) { p.required = false })
}

// Describe sets the description of an argument, keyword or example.
type Describe string

func (d Describe) applyParam(p *param) { p.description = string(d) }

func (d Describe) applyExample(e *Example) { e.Description = string(d) }

// Header sets the heading an example is listed under.
type Header string

func (h Header) applyExample(e *Example) { e.Header = string(h) }

// WithArgument declares a positional argument. Arguments are required
// unless Optional is given.
func WithArgument(name string, opts ...ParamOption) ClassOption {
	p := param{required: true}
	for _, opt := range opts {
		opt.applyParam(&p)
	}
	return func(c *Class) {
		c.properties.Arguments = append(c.properties.Arguments, Argument{
			Name:        name,
			Required:    p.required,
			Description: p.description,
		})
	}
}

// WithKeyword declares a keyword argument. Keywords are optional unless
// Required is given. Redeclaring a keyword replaces it.
func WithKeyword(name string, opts ...ParamOption) ClassOption {
	var p param
	for _, opt := range opts {
		opt.applyParam(&p)
	}
	return func(c *Class) {
		if c.properties.Keywords == nil {
			c.properties.Keywords = make(map[string]Keyword)
		}
		c.properties.Keywords[name] = Keyword{
			Name:        name,
			Required:    p.required,
			Description: p.description,
		}
	}
}

// WithDescription sets the unit's description.
func WithDescription(text string) ClassOption {
	return func(c *Class) {
		c.properties.Description = text
	}
}

// WithExample adds an invocation example.
func WithExample(command string, opts ...ExampleOption) ClassOption {
	ex := Example{Command: command}
	for _, opt := range opts {
		opt.applyExample(&ex)
	}
	return func(c *Class) {
		c.properties.Examples = append(c.properties.Examples, ex)
	}
}
