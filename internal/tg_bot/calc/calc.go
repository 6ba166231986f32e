// Package calc evaluates arithmetic expressions typed by chat users.
// Only numbers, parentheses, + - * / % ** and unary minus are accepted;
// anything else is rejected before evaluation.
package calc

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrInvalidExpression is returned for any input that is not plain arithmetic
// or that cannot be evaluated (division by zero, overflow...).
var ErrInvalidExpression = errors.New("invalid expression")

// maxResultBits bounds the size of integer products and powers.
const maxResultBits = 1 << 16

// errTooLarge is returned when an integer result would exceed maxResultBits.
var errTooLarge = fmt.Errorf("%w: result too large", ErrInvalidExpression)

// value is an integer of arbitrary size or a float.
type value struct {
	i       *big.Int
	f       float64
	isFloat bool
}

func intValue(i *big.Int) value  { return value{i: i} }
func floatValue(f float64) value { return value{f: f, isFloat: true} }

func (v value) float() float64 {
	if v.isFloat {
		return v.f
	}
	f, _ := new(big.Float).SetInt(v.i).Float64()
	return f
}

// String formats v the way a calculator user expects: integers without a
// fraction, floats always with one.
func (v value) String() string {
	if !v.isFloat {
		return v.i.String()
	}
	switch {
	case math.IsInf(v.f, 1):
		return "inf"
	case math.IsInf(v.f, -1):
		return "-inf"
	case math.IsNaN(v.f):
		return "nan"
	}
	abs := math.Abs(v.f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(v.f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v.f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Evaluate computes expr and returns the formatted result.
// Spaces are ignored, "2 + 3 * 4" gives "14" and "7 / 2" gives "3.5".
func Evaluate(expr string) (string, error) {
	p := &parser{src: strings.ReplaceAll(expr, " ", "")}
	if p.src == "" {
		return "", ErrInvalidExpression
	}
	v, err := p.parseExpr()
	if err != nil {
		return "", err
	}
	if p.pos != len(p.src) {
		return "", fmt.Errorf("%w: unexpected %q", ErrInvalidExpression, p.src[p.pos:])
	}
	return v.String(), nil
}

// parser is a recursive descent parser over the grammar
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/" | "%") factor }
//	factor = "-" factor | power
//	power  = atom [ "**" factor ]
//	atom   = number | "(" expr ")"
type parser struct {
	src string
	pos int
}

func (p *parser) peek(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

func (p *parser) parseExpr() (value, error) {
	left, err := p.parseTerm()
	if err != nil {
		return value{}, err
	}
	for {
		var op byte
		switch {
		case p.peek("+"):
			op = '+'
		case p.peek("-"):
			op = '-'
		default:
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return value{}, err
		}
		if left, err = apply(op, left, right); err != nil {
			return value{}, err
		}
	}
}

func (p *parser) parseTerm() (value, error) {
	left, err := p.parseFactor()
	if err != nil {
		return value{}, err
	}
	for {
		var op byte
		switch {
		case p.peek("**"):
			return left, nil
		case p.peek("//"):
			return value{}, fmt.Errorf("%w: floor division is not allowed", ErrInvalidExpression)
		case p.peek("*"):
			op = '*'
		case p.peek("/"):
			op = '/'
		case p.peek("%"):
			op = '%'
		default:
			return left, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return value{}, err
		}
		if left, err = apply(op, left, right); err != nil {
			return value{}, err
		}
	}
}

func (p *parser) parseFactor() (value, error) {
	if p.peek("-") {
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return value{}, err
		}
		if v.isFloat {
			return floatValue(-v.f), nil
		}
		return intValue(new(big.Int).Neg(v.i)), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (value, error) {
	base, err := p.parseAtom()
	if err != nil {
		return value{}, err
	}
	if !p.peek("**") {
		return base, nil
	}
	p.pos += 2
	exp, err := p.parseFactor()
	if err != nil {
		return value{}, err
	}
	return power(base, exp)
}

func (p *parser) parseAtom() (value, error) {
	if p.pos >= len(p.src) {
		return value{}, fmt.Errorf("%w: unexpected end", ErrInvalidExpression)
	}
	if p.peek("(") {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return value{}, err
		}
		if !p.peek(")") {
			return value{}, fmt.Errorf("%w: missing )", ErrInvalidExpression)
		}
		p.pos++
		return v, nil
	}
	return p.parseNumber()
}

func (p *parser) parseNumber() (value, error) {
	start := p.pos
	digits := func() {
		for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
			p.pos++
		}
	}
	digits()
	isFloat := false
	if p.peek(".") {
		isFloat = true
		p.pos++
		digits()
	}
	if p.pos > start && p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		mark := p.pos
		p.pos++
		if p.peek("+") || p.peek("-") {
			p.pos++
		}
		if p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			isFloat = true
			digits()
		} else {
			p.pos = mark
		}
	}
	literal := p.src[start:p.pos]
	if literal == "" || literal == "." {
		return value{}, fmt.Errorf("%w: unexpected %q", ErrInvalidExpression, p.src[start:])
	}
	if strings.HasPrefix(literal, "_") || strings.HasSuffix(literal, "_") || strings.Contains(literal, "__") {
		return value{}, fmt.Errorf("%w: bad number %q", ErrInvalidExpression, literal)
	}
	clean := strings.ReplaceAll(literal, "_", "")

	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return value{}, fmt.Errorf("%w: bad number %q", ErrInvalidExpression, literal)
		}
		return floatValue(f), nil
	}
	if len(clean) > 1 && clean[0] == '0' && strings.Trim(clean, "0") != "" {
		return value{}, fmt.Errorf("%w: leading zeros in %q", ErrInvalidExpression, literal)
	}
	i, ok := new(big.Int).SetString(clean, 10)
	if !ok {
		return value{}, fmt.Errorf("%w: bad number %q", ErrInvalidExpression, literal)
	}
	return intValue(i), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func apply(op byte, a, b value) (value, error) {
	if op == '/' {
		return divide(a, b)
	}
	if a.isFloat || b.isFloat {
		x, y := a.float(), b.float()
		switch op {
		case '+':
			return checkFloat(x + y)
		case '-':
			return checkFloat(x - y)
		case '*':
			return checkFloat(x * y)
		case '%':
			if y == 0 {
				return value{}, fmt.Errorf("%w: modulo by zero", ErrInvalidExpression)
			}
			r := math.Mod(x, y)
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			return floatValue(r), nil
		}
	}
	switch op {
	case '+':
		return intValue(new(big.Int).Add(a.i, b.i)), nil
	case '-':
		return intValue(new(big.Int).Sub(a.i, b.i)), nil
	case '*':
		if a.i.BitLen()+b.i.BitLen() > maxResultBits {
			return value{}, errTooLarge
		}
		return intValue(new(big.Int).Mul(a.i, b.i)), nil
	case '%':
		if b.i.Sign() == 0 {
			return value{}, fmt.Errorf("%w: modulo by zero", ErrInvalidExpression)
		}
		// result takes the sign of the divisor
		r := new(big.Int).Rem(a.i, b.i)
		if r.Sign() != 0 && r.Sign() != b.i.Sign() {
			r.Add(r, b.i)
		}
		return intValue(r), nil
	}
	return value{}, fmt.Errorf("%w: unknown operator %q", ErrInvalidExpression, op)
}

func divide(a, b value) (value, error) {
	if !a.isFloat && !b.isFloat {
		if b.i.Sign() == 0 {
			return value{}, fmt.Errorf("%w: division by zero", ErrInvalidExpression)
		}
		f, _ := new(big.Rat).SetFrac(a.i, b.i).Float64()
		return checkFloat(f)
	}
	y := b.float()
	if y == 0 {
		return value{}, fmt.Errorf("%w: division by zero", ErrInvalidExpression)
	}
	return checkFloat(a.float() / y)
}

func power(base, exp value) (value, error) {
	if !base.isFloat && !exp.isFloat && exp.i.Sign() >= 0 {
		if base.i.CmpAbs(big.NewInt(1)) > 0 {
			// |base|**exp needs about BitLen(base)*exp bits
			if !exp.i.IsInt64() || exp.i.Int64() > maxResultBits ||
				int64(base.i.BitLen())*exp.i.Int64() > maxResultBits {
				return value{}, errTooLarge
			}
		} else if exp.i.Sign() > 0 {
			// 0, 1 and -1 keep their size, only the parity of exp matters
			exp = intValue(new(big.Int).Add(big.NewInt(2), new(big.Int).And(exp.i, big.NewInt(1))))
		}
		return intValue(new(big.Int).Exp(base.i, exp.i, nil)), nil
	}
	x, y := base.float(), exp.float()
	if x == 0 && y < 0 {
		return value{}, fmt.Errorf("%w: zero to a negative power", ErrInvalidExpression)
	}
	return checkFloat(math.Pow(x, y))
}

// checkFloat rejects results that have no real value or overflowed.
func checkFloat(f float64) (value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return value{}, fmt.Errorf("%w: result out of range", ErrInvalidExpression)
	}
	return floatValue(f), nil
}
