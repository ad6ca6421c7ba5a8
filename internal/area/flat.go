package area

import "strings"

func resetCommandNotIn(cmds string) func(*Reset) bool {
	return func(r *Reset) bool { return !strings.Contains(cmds, r.Command) }
}

// romResetSchema zeroes arg3 for G and R and arg4 for P and M. The fourth
// argument is optional on every other command; whatever remains on the line
// is kept as the comment.
var romResetSchema = Schema[Reset]{
	WordField("command", func(r *Reset) *string { return &r.Command }).Skip(),
	NumberField("if_flag", func(r *Reset) *int { return &r.IfFlag }),
	NumberField("arg1", func(r *Reset) *int { return &r.Arg1 }),
	NumberField("arg2", func(r *Reset) *int { return &r.Arg2 }),
	NumberField("arg3", func(r *Reset) *int { return &r.Arg3 }).When(resetCommandNotIn("GR")),
	NumberField("arg4", func(r *Reset) *int { return &r.Arg4 }).When(resetCommandNotIn("PM")).Optional(),
	LineField("comment", func(r *Reset) *string { return &r.Comment }),
}

// mercResetSchema has no fourth argument.
var mercResetSchema = Schema[Reset]{
	romResetSchema[0],
	romResetSchema[1],
	romResetSchema[2],
	romResetSchema[3],
	romResetSchema[4],
	romResetSchema[6],
}

func readRomReset(c *Cursor, command byte) (*Reset, error) {
	return readReset(c, command, romResetSchema)
}

func readMercReset(c *Cursor, command byte) (*Reset, error) {
	return readReset(c, command, mercResetSchema)
}

func readReset(c *Cursor, command byte, s Schema[Reset]) (*Reset, error) {
	r := &Reset{Command: string(command)}
	if err := s.Read(c, r); err != nil {
		return nil, err
	}
	return r, nil
}

var specialSchema = Schema[Special]{
	WordField("command", func(s *Special) *string { return &s.Command }).Skip(),
	NumberField("arg1", func(s *Special) *int { return &s.Arg1 }),
	WordField("arg2", func(s *Special) *string { return &s.Arg2 }),
	LineField("comment", func(s *Special) *string { return &s.Comment }),
}

func readSpecial(c *Cursor, command byte) (*Special, error) {
	s := &Special{Command: string(command)}
	if err := specialSchema.Read(c, s); err != nil {
		return nil, err
	}
	return s, nil
}

var shopSchema = Schema[Shop]{
	NumberField("keeper", func(s *Shop) *int { return &s.Keeper }).Skip(),
	NumberField("buy_type0", func(s *Shop) *int { return &s.BuyType[0] }),
	NumberField("buy_type1", func(s *Shop) *int { return &s.BuyType[1] }),
	NumberField("buy_type2", func(s *Shop) *int { return &s.BuyType[2] }),
	NumberField("buy_type3", func(s *Shop) *int { return &s.BuyType[3] }),
	NumberField("buy_type4", func(s *Shop) *int { return &s.BuyType[4] }),
	NumberField("profit_buy", func(s *Shop) *int { return &s.ProfitBuy }),
	NumberField("profit_sell", func(s *Shop) *int { return &s.ProfitSell }),
	NumberField("open_hour", func(s *Shop) *int { return &s.OpenHour }),
	NumberField("close_hour", func(s *Shop) *int { return &s.CloseHour }),
	LineField("comment", func(s *Shop) *string { return &s.Comment }),
}

// helpSchema stops after the keyword when it is the "$" terminator.
var helpSchema = Schema[Help]{
	NumberField("level", func(h *Help) *int { return &h.Level }),
	StringField("keyword", func(h *Help) *string { return &h.Keyword }),
	StringField("text", func(h *Help) *string { return &h.Text }).
		When(func(h *Help) bool { return !isHelpTerminator(h.Keyword) }),
}

func isHelpTerminator(keyword string) bool { return strings.HasPrefix(keyword, "$") }
