package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/wealthpath/datecheck/internal/config"
	"github.com/wealthpath/datecheck/internal/logger"
	"github.com/wealthpath/datecheck/internal/model"
	"github.com/wealthpath/datecheck/pkg/datetime"
)

//go:embed smoke.toml
var smokeFixture string

// Clock supplies the current time. Implementations must be safe for
// concurrent use.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CheckService parses, validates and compares dates and times according
// to the configured reference year and strictness. It holds no mutable
// state once configured.
type CheckService struct {
	cfg    *config.Config
	clock  Clock
	logger *slog.Logger
}

// NewCheckService creates a new CheckService using the system clock.
func NewCheckService(cfg *config.Config) *CheckService {
	return &CheckService{cfg: cfg, clock: systemClock{}}
}

// SetClock sets the clock used to determine the current year, date and time.
func (s *CheckService) SetClock(clock Clock) {
	s.clock = clock
}

// SetLogger sets the logger, the package default is used otherwise.
func (s *CheckService) SetLogger(l *slog.Logger) {
	s.logger = l
}

func (s *CheckService) log(ctx context.Context) *slog.Logger {
	if s.logger != nil {
		return logger.With(ctx, s.logger)
	}
	return logger.FromContext(ctx)
}

// NewRun returns a context tagged with a fresh run ID and the command name.
func NewRun(ctx context.Context, command string) context.Context {
	ctx = logger.WithRunID(ctx, uuid.NewString())
	return logger.WithCommand(ctx, command)
}

// ReferenceYear returns the latest year accepted for dates.
func (s *CheckService) ReferenceYear() int {
	return s.cfg.ReferenceYearOr(s.clock.Now())
}

// CheckDate parses input as "month/day/year" and validates it. Malformed
// input is returned as an error, an invalid date is not an error.
func (s *CheckService) CheckDate(ctx context.Context, input string) (*model.Verdict, error) {
	d, err := datetime.ParseCalendarDate(input)
	if err != nil {
		s.log(ctx).Warn("malformed date", "input", input, "error", err)
		return nil, err
	}
	return s.dateVerdict(ctx, input, d), nil
}

func (s *CheckService) dateVerdict(ctx context.Context, input string, d datetime.CalendarDate) *model.Verdict {
	refYear := s.ReferenceYear()
	v := newVerdict(model.KindDate, input, d.String(), d.Validate(refYear))
	s.log(ctx).Debug("date checked", "input", input, "valid", v.Valid, "reason", v.Reason, "reference_year", refYear)
	return v
}

// CheckTime parses input as "hour:minute" and validates it, rejecting
// negative fields only when strict time checks are configured.
func (s *CheckService) CheckTime(ctx context.Context, input string) (*model.Verdict, error) {
	t, err := datetime.ParseClockTime(input)
	if err != nil {
		s.log(ctx).Warn("malformed time", "input", input, "error", err)
		return nil, err
	}
	return s.timeVerdict(ctx, input, t), nil
}

func (s *CheckService) timeVerdict(ctx context.Context, input string, t datetime.ClockTime) *model.Verdict {
	v := newVerdict(model.KindTime, input, t.String(), t.Validate(s.cfg.StrictTime))
	s.log(ctx).Debug("time checked", "input", input, "valid", v.Valid, "reason", v.Reason, "strict", s.cfg.StrictTime)
	return v
}

// Today returns the verdict for the current date.
func (s *CheckService) Today(ctx context.Context) *model.Verdict {
	d := datetime.CalendarDateOf(s.clock.Now())
	return s.dateVerdict(ctx, d.String(), d)
}

// Now returns the verdict for the current time of day.
func (s *CheckService) Now(ctx context.Context) *model.Verdict {
	t := datetime.ClockTimeOf(s.clock.Now())
	return s.timeVerdict(ctx, t.String(), t)
}

func newVerdict(kind model.Kind, input, value string, err error) *model.Verdict {
	v := &model.Verdict{Kind: kind, Input: input, Value: value, Valid: err == nil}
	if err != nil {
		v.Reason = err.Error()
	}
	return v
}

// CompareDates parses a and b as dates and reports their order. Validity
// does not affect the order.
func (s *CheckService) CompareDates(ctx context.Context, a, b string) (*model.Comparison, error) {
	refYear := s.ReferenceYear()
	c, err := compareValues(a, b, datetime.ParseCalendarDate, func(d datetime.CalendarDate) bool {
		return d.ValidAsOf(refYear)
	})
	if err != nil {
		s.log(ctx).Warn("malformed date", "error", err)
		return nil, err
	}
	c.Kind = model.KindDate
	s.log(ctx).Debug("dates compared", "a", a, "b", b, "order", c.Order)
	return c, nil
}

// CompareTimes parses a and b as times and reports their order.
func (s *CheckService) CompareTimes(ctx context.Context, a, b string) (*model.Comparison, error) {
	c, err := compareValues(a, b, datetime.ParseClockTime, func(t datetime.ClockTime) bool {
		return t.Validate(s.cfg.StrictTime) == nil
	})
	if err != nil {
		s.log(ctx).Warn("malformed time", "error", err)
		return nil, err
	}
	c.Kind = model.KindTime
	s.log(ctx).Debug("times compared", "a", a, "b", b, "order", c.Order)
	return c, nil
}

func compareValues[T datetime.Value[T]](a, b string, parse func(string) (T, error), valid func(T) bool) (*model.Comparison, error) {
	va, err := parse(a)
	if err != nil {
		return nil, err
	}
	vb, err := parse(b)
	if err != nil {
		return nil, err
	}
	return &model.Comparison{
		A:      va.String(),
		B:      vb.String(),
		Order:  model.OrderOf(va.Compare(vb)),
		Equal:  va.Equal(vb),
		AValid: valid(va),
		BValid: valid(vb),
	}, nil
}

type smokeFile struct {
	Date []model.SmokeCase `toml:"date"`
	Time []model.SmokeCase `toml:"time"`
}

// SmokeCases returns the built-in fixed scenarios.
func SmokeCases() ([]model.SmokeCase, error) {
	var f smokeFile
	if _, err := toml.Decode(smokeFixture, &f); err != nil {
		return nil, fmt.Errorf("decoding smoke fixture: %w", err)
	}
	cases := make([]model.SmokeCase, 0, len(f.Date)+len(f.Time))
	for _, c := range f.Date {
		c.Kind = model.KindDate
		cases = append(cases, c)
	}
	for _, c := range f.Time {
		c.Kind = model.KindTime
		cases = append(cases, c)
	}
	return cases, nil
}

// Smoke checks every built-in scenario and reports those whose verdict
// differs from the expected one.
func (s *CheckService) Smoke(ctx context.Context) (*model.SmokeReport, error) {
	cases, err := SmokeCases()
	if err != nil {
		return nil, err
	}
	report := &model.SmokeReport{
		RunID:         logger.RunID(ctx),
		ReferenceYear: s.ReferenceYear(),
		StrictTime:    s.cfg.StrictTime,
		Results:       make([]model.SmokeResult, 0, len(cases)),
	}
	for _, c := range cases {
		var v *model.Verdict
		switch c.Kind {
		case model.KindDate:
			v, err = s.CheckDate(ctx, c.Input)
		case model.KindTime:
			v, err = s.CheckTime(ctx, c.Input)
		default:
			err = errors.New("unknown kind: " + string(c.Kind))
		}
		if err != nil {
			return nil, fmt.Errorf("smoke case %q: %w", c.Input, err)
		}
		pass := v.Valid == c.Expected(s.cfg.StrictTime)
		if !pass {
			report.Failed++
			s.log(ctx).Warn("unexpected verdict", "input", c.Input, "valid", v.Valid, "note", c.Note)
		}
		report.Results = append(report.Results, model.SmokeResult{Case: c, Verdict: *v, Pass: pass})
	}
	s.log(ctx).Info("smoke run complete", "cases", len(cases), "failed", report.Failed)
	return report, nil
}
