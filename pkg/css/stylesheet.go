package css

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Rule represents a CSS rule (selector + declarations)
type Rule struct {
	Selector     Selector
	Declarations map[string]string // property -> value
}

// String formats the rule with its declarations sorted by property.
func (r Rule) String() string {
	props := make([]string, 0, len(r.Declarations))
	for p := range r.Declarations {
		props = append(props, p)
	}
	sort.Strings(props)

	var sb strings.Builder
	sb.WriteString(r.Selector.String())
	sb.WriteString(" {")
	for _, p := range props {
		fmt.Fprintf(&sb, " %s: %s;", p, r.Declarations[p])
	}
	sb.WriteString(" }")
	return sb.String()
}

// Parser is a recursive-descent stylesheet parser. A malformed declaration
// or rule is skipped up to the next ';' or '}' and parsing resumes there.
type Parser struct {
	input  string
	pos    int
	logger *zap.Logger
}

type Option func(*Parser)

// WithLogger routes recovery diagnostics to logger at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewParser(input string, opts ...Option) *Parser {
	p := &Parser{input: input, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseStylesheet parses CSS stylesheet content into rules. It never fails;
// rules it cannot make sense of are dropped.
func ParseStylesheet(css string, opts ...Option) []Rule {
	return NewParser(css, opts...).Parse()
}

// ParseDeclarations parses a bare declaration list such as the value of a
// style attribute.
func ParseDeclarations(decls string, opts ...Option) map[string]string {
	return NewParser(decls, opts...).body()
}

func (p *Parser) Parse() []Rule {
	rules := make([]Rule, 0)
	for p.pos < len(p.input) {
		p.whitespace()
		if p.pos >= len(p.input) {
			break
		}
		start := p.pos
		rule, err := p.rule()
		if err == nil {
			rules = append(rules, rule)
			continue
		}
		why, found := p.ignoreUntil("}")
		p.logger.Debug("css: skipping malformed rule",
			zap.Int("offset", start),
			zap.String("skipped", p.input[start:p.pos]),
			zap.Error(err))
		if !found || why != '}' {
			break
		}
		p.pos++
		p.whitespace()
	}
	return rules
}

func (p *Parser) rule() (Rule, error) {
	selector, err := p.selector()
	if err != nil {
		return Rule{}, err
	}
	if err := p.literal('{'); err != nil {
		return Rule{}, err
	}
	p.whitespace()
	decls := p.body()
	if err := p.literal('}'); err != nil {
		return Rule{}, err
	}
	return Rule{Selector: selector, Declarations: decls}, nil
}

func (p *Parser) selector() (Selector, error) {
	tag, err := p.word()
	if err != nil {
		return nil, err
	}
	var out Selector = TagSelector{Tag: strings.ToLower(tag)}
	p.whitespace()
	for p.pos < len(p.input) && p.input[p.pos] != '{' {
		tag, err := p.word()
		if err != nil {
			return nil, err
		}
		out = DescendantSelector{Ancestor: out, Descendant: TagSelector{Tag: strings.ToLower(tag)}}
		p.whitespace()
	}
	return out, nil
}

// body parses declarations until '}' or the end of input. The closing
// brace is left unconsumed.
func (p *Parser) body() map[string]string {
	pairs := make(map[string]string)
	for p.pos < len(p.input) && p.input[p.pos] != '}' {
		start := p.pos
		err := p.declaration(pairs)
		if err == nil {
			continue
		}
		why, found := p.ignoreUntil(";}")
		p.logger.Debug("css: skipping malformed declaration",
			zap.Int("offset", start),
			zap.String("skipped", p.input[start:p.pos]),
			zap.Error(err))
		if !found || why != ';' {
			break
		}
		p.pos++
		p.whitespace()
	}
	return pairs
}

// declaration parses one "property: value;" triple. The pair is recorded
// before the terminating ';' is checked, so a final declaration without a
// semicolon still counts.
func (p *Parser) declaration(pairs map[string]string) error {
	prop, val, err := p.pair()
	if err != nil {
		return err
	}
	pairs[prop] = val
	p.whitespace()
	if err := p.literal(';'); err != nil {
		return err
	}
	p.whitespace()
	return nil
}

func (p *Parser) pair() (string, string, error) {
	prop, err := p.word()
	if err != nil {
		return "", "", err
	}
	p.whitespace()
	if err := p.literal(':'); err != nil {
		return "", "", err
	}
	p.whitespace()
	val, err := p.word()
	if err != nil {
		return "", "", err
	}
	return strings.ToLower(prop), val, nil
}

func (p *Parser) whitespace() {
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

// word consumes a run of letters, digits and "#-.%".
func (p *Parser) word() (string, error) {
	start := p.pos
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !isWordRune(r) {
			break
		}
		p.pos += size
	}
	if p.pos == start {
		return "", p.errorf("expected word")
	}
	return p.input[start:p.pos], nil
}

func (p *Parser) literal(want byte) error {
	if p.pos >= len(p.input) || p.input[p.pos] != want {
		return p.errorf("expected %q", want)
	}
	p.pos++
	return nil
}

// ignoreUntil advances to the next byte in chars without consuming it.
func (p *Parser) ignoreUntil(chars string) (byte, bool) {
	for p.pos < len(p.input) {
		if strings.IndexByte(chars, p.input[p.pos]) >= 0 {
			return p.input[p.pos], true
		}
		p.pos++
	}
	return 0, false
}

// errorf returns a formatted error with position information
func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("css: position %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("#-.%", r)
}
