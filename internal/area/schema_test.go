package area_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/mudarea/internal/area"
)

type sample struct {
	ID      int
	Kind    string
	Amount  int
	Extra   int
	Mask    int64
	Roll    area.Dice
	Comment string
}

var sampleSchema = area.Schema[sample]{
	area.NumberField("id", func(s *sample) *int { return &s.ID }).Skip(),
	area.WordField("kind", func(s *sample) *string { return &s.Kind }),
	area.NumberField("amount", func(s *sample) *int { return &s.Amount }).Transform(area.Scale(10)),
	area.NumberField("extra", func(s *sample) *int { return &s.Extra }).
		When(func(s *sample) bool { return s.Kind == "big" }),
	area.FlagField("mask", func(s *sample) *int64 { return &s.Mask }).Optional(),
	area.LineField("comment", func(s *sample) *string { return &s.Comment }),
}

func TestSchema_Read(t *testing.T) {
	var s sample
	require.NoError(t, sampleSchema.Read(cursor("big 4 7 12 trailing text\nnext"), &s))
	assert.Equal(t, sample{Kind: "big", Amount: 40, Extra: 7, Mask: 12, Comment: "trailing text"}, s)
}

func TestSchema_WhenSkipsField(t *testing.T) {
	var s sample
	require.NoError(t, sampleSchema.Read(cursor("small 4 12\n"), &s))
	assert.Equal(t, 0, s.Extra)
	assert.Equal(t, int64(12), s.Mask)
}

func TestSchema_OptionalStopsAtLineEnd(t *testing.T) {
	var s sample
	c := cursor("small 4\n99")
	require.NoError(t, sampleSchema.Read(c, &s))
	assert.Zero(t, s.Mask)
	n, err := c.ReadNumber()
	require.NoError(t, err)
	assert.Equal(t, 99, n)
}

func TestSchema_ErrorNamesField(t *testing.T) {
	var s sample
	err := sampleSchema.Read(cursor("small oops"), &s)
	var pe *area.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Message, "amount: ")
}

func TestSchema_TransformError(t *testing.T) {
	schema := area.Schema[sample]{
		area.Discard[sample]("marker", area.KindLetter).Transform(area.ExpectText("S")),
	}
	var s sample
	err := schema.Read(cursor("Q"), &s)
	var pe *area.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, `marker: expected "S" but found "Q"`, pe.Message)
}

func TestSchema_ExtendDoesNotModifyBase(t *testing.T) {
	base := area.Schema[sample]{area.WordField("kind", func(s *sample) *string { return &s.Kind })}
	ext := base.Extend(area.DiceField("roll", func(s *sample) *area.Dice { return &s.Roll }))
	assert.Len(t, base, 1)
	assert.Len(t, ext, 2)

	var s sample
	require.NoError(t, ext.Read(cursor("x 2d6+1"), &s))
	assert.Equal(t, area.Dice{Number: 2, Sides: 6, Bonus: 1}, s.Roll)
}

func TestSchema_Divide(t *testing.T) {
	schema := area.Schema[sample]{
		area.NumberField("amount", func(s *sample) *int { return &s.Amount }).Transform(area.Divide(20)),
	}
	var s sample
	require.NoError(t, schema.Read(cursor("1050"), &s))
	assert.Equal(t, 52, s.Amount)
}
