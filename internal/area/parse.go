package area

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
	source string
}

// Option configures Parse.
type Option func(*options)

// WithLogger sets the logger used for section and record tracing. The
// default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSource names the buffer in log fields and ParseError values.
func WithSource(name string) Option {
	return func(o *options) { o.source = name }
}

// Parse reads a complete area file written in dialect d.
//
// Precondition: data holds the whole file.
// Postcondition: returns a fully populated Area, or nil and a *ParseError.
func Parse(data []byte, d Dialect, opts ...Option) (*Area, error) {
	p, err := ProfileFor(d)
	if err != nil {
		return nil, err
	}
	return ParseWith(data, p, opts...)
}

// ParseWith reads a complete area file using an explicit profile.
func ParseWith(data []byte, p *Profile, opts ...Option) (*Area, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	st := &State{
		Cursor:  NewCursor(o.source, data),
		Area:    newArea(p.Dialect, o.source, p.NewHeader()),
		Profile: p,
		Logger:  o.logger.With(zap.String("source", o.source), zap.Stringer("dialect", p.Dialect)),
	}
	if err := st.run(); err != nil {
		return nil, err
	}
	st.Logger.Debug("parsed area",
		zap.Int("rooms", st.Area.Rooms.Len()),
		zap.Int("mobs", st.Area.Mobs.Len()),
		zap.Int("objects", st.Area.Objects.Len()),
		zap.Int("resets", len(st.Area.Resets)),
	)
	return st.Area, nil
}
