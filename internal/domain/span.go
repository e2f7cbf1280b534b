package domain

import (
	"context"
	"encoding/json"
	"time"
)

const ContextProfileKey = "valuationProfile"

// Span times one stage of a pass over the graph.
type Span struct {
	Name       string `json:"name"`
	startTs    time.Time
	subProfile *Profile

	SubSpans  []*Span `json:"subSpans,omitempty"`
	ElapsedMs *int64  `json:"elapsedMs"`
}

// Profile is an ordered list of spans. Profiles ride along on a context,
// and a nil profile is a no op, so instrumented code never has to check
// whether the caller asked for timings.
type Profile struct {
	Spans   []*Span `json:"spans"`
	startTs time.Time
	TotalMs *int64 `json:"totalMs"`
}

func NewProfile() (newProfile *Profile, endNewProfile func()) {
	newProfile = &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}
	return newProfile, newProfile.End
}

// ProfileFromContext returns the profile attached to ctx, or nil when the
// caller didn't attach one.
func ProfileFromContext(ctx context.Context) *Profile {
	profile, ok := ctx.Value(ContextProfileKey).(*Profile)
	if !ok {
		return nil
	}
	return profile
}

func (p *Profile) End() {
	if p == nil {
		return
	}
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

// StartNewSpan ends the previous span and opens the next one.
// not safe for concurrent use
func (p *Profile) StartNewSpan(name string) (newSpan *Span, endSpan func()) {
	if p == nil {
		return nil, func() {}
	}
	newSpan = &Span{
		Name:    name,
		startTs: time.Now(),
	}
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	p.Spans = append(p.Spans, newSpan)
	return newSpan, newSpan.End
}

func (s *Span) End() {
	if s == nil {
		return
	}
	if s.ElapsedMs == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.ElapsedMs = &t
	}
	if s.subProfile != nil {
		s.SubSpans = s.subProfile.Spans
	}
}

// NewSubProfile hangs a child profile off the span, for stages that break
// down into their own timed steps.
func (s *Span) NewSubProfile() (*Profile, func()) {
	if s == nil {
		return nil, func() {}
	}
	newProfile, end := NewProfile()
	s.subProfile = newProfile
	return newProfile, end
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	return json.Marshal(p.Spans)
}
