package area

import (
	"errors"
	"fmt"
)

// Kind selects the cursor primitive used to read a field.
type Kind int

// Field kinds.
const (
	KindNumber Kind = iota
	KindFlag
	KindWord
	KindString
	KindLetter
	KindDice
	KindLine
)

// Value is the raw result of one primitive read. Only the member matching
// the field's Kind is meaningful: Int for numbers and flags, Text for words,
// strings, letters and lines, Dice for dice.
type Value struct {
	Int  int64
	Text string
	Dice Dice
}

// Field declares one step of a straight-line record grammar.
type Field[T any] struct {
	Name      string
	Kind      Kind
	skip      bool
	optional  bool
	when      func(*T) bool
	transform func(Value) (Value, error)
	set       func(*T, Value)
}

// Skip marks the field as assigned outside the record body; it is never read.
func (f Field[T]) Skip() Field[T] {
	f.skip = true
	return f
}

// Optional reads the field only when a number follows on the current line,
// leaving it zero otherwise.
func (f Field[T]) Optional() Field[T] {
	f.optional = true
	return f
}

// When gates the read on a predicate over the fields read so far.
func (f Field[T]) When(pred func(*T) bool) Field[T] {
	f.when = pred
	return f
}

// Transform rewrites the raw value before it is stored. A transform error
// becomes a ParseError at the field's position.
func (f Field[T]) Transform(fn func(Value) (Value, error)) Field[T] {
	f.transform = fn
	return f
}

// CustomField stores the raw value with set.
func CustomField[T any](name string, kind Kind, set func(*T, Value)) Field[T] {
	return Field[T]{Name: name, Kind: kind, set: set}
}

// NumberField reads a number into *at(rec).
func NumberField[T any](name string, at func(*T) *int) Field[T] {
	return CustomField(name, KindNumber, func(rec *T, v Value) { *at(rec) = int(v.Int) })
}

// FlagField reads a flag bitmask into *at(rec).
func FlagField[T any](name string, at func(*T) *int64) Field[T] {
	return CustomField(name, KindFlag, func(rec *T, v Value) { *at(rec) = v.Int })
}

// WordField reads a word into *at(rec).
func WordField[T any](name string, at func(*T) *string) Field[T] {
	return CustomField(name, KindWord, func(rec *T, v Value) { *at(rec) = v.Text })
}

// StringField reads a tilde-terminated string into *at(rec).
func StringField[T any](name string, at func(*T) *string) Field[T] {
	return CustomField(name, KindString, func(rec *T, v Value) { *at(rec) = v.Text })
}

// LineField reads the rest of the current line into *at(rec).
func LineField[T any](name string, at func(*T) *string) Field[T] {
	return CustomField(name, KindLine, func(rec *T, v Value) { *at(rec) = v.Text })
}

// DiceField reads a dice expression into *at(rec).
func DiceField[T any](name string, at func(*T) *Dice) Field[T] {
	return CustomField(name, KindDice, func(rec *T, v Value) { *at(rec) = v.Dice })
}

// Discard reads a field of the given kind and drops it.
func Discard[T any](name string, kind Kind) Field[T] {
	return Field[T]{Name: name, Kind: kind}
}

// Scale multiplies a numeric value by n.
func Scale(n int64) func(Value) (Value, error) {
	return func(v Value) (Value, error) {
		v.Int *= n
		return v, nil
	}
}

// Divide divides a numeric value by n, truncating toward zero.
func Divide(n int64) func(Value) (Value, error) {
	return func(v Value) (Value, error) {
		v.Int /= n
		return v, nil
	}
}

// ExpectText fails unless the raw text equals want.
func ExpectText(want string) func(Value) (Value, error) {
	return func(v Value) (Value, error) {
		if v.Text != want {
			return v, fmt.Errorf("expected %q but found %q", want, v.Text)
		}
		return v, nil
	}
}

// Schema is an ordered field declaration list for one record shape.
type Schema[T any] []Field[T]

// Read interprets the schema against c, filling rec in declaration order.
//
// Postcondition: on error rec may be partially filled and the error is a
// *ParseError naming the failing field.
func (s Schema[T]) Read(c *Cursor, rec *T) error {
	for _, f := range s {
		if f.skip {
			continue
		}
		if f.when != nil && !f.when(rec) {
			continue
		}
		if f.optional && !c.HasNumberOnLine() {
			continue
		}
		v, err := readValue(c, f.Kind)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Message = f.Name + ": " + pe.Message
			}
			return err
		}
		if f.transform != nil {
			if v, err = f.transform(v); err != nil {
				return c.Failf("%s: %v", f.Name, err)
			}
		}
		if f.set != nil {
			f.set(rec, v)
		}
	}
	return nil
}

// Extend returns a new schema with more fields appended; s is not modified.
func (s Schema[T]) Extend(more ...Field[T]) Schema[T] {
	out := make(Schema[T], 0, len(s)+len(more))
	out = append(out, s...)
	return append(out, more...)
}

func readValue(c *Cursor, kind Kind) (Value, error) {
	switch kind {
	case KindNumber:
		n, err := c.readNumber()
		return Value{Int: n}, err
	case KindFlag:
		n, err := c.ReadFlag()
		return Value{Int: n}, err
	case KindWord:
		s, err := c.ReadWord()
		return Value{Text: s}, err
	case KindString:
		s, err := c.ReadString()
		return Value{Text: s}, err
	case KindLetter:
		ch, err := c.ReadLetter()
		return Value{Text: string(ch)}, err
	case KindDice:
		d, err := c.ReadDice()
		return Value{Dice: d}, err
	case KindLine:
		return Value{Text: c.ReadToEOL()}, nil
	default:
		return Value{}, c.Failf("unknown field kind %d", kind)
	}
}
