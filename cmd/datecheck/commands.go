package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wealthpath/datecheck/internal/apperror"
	"github.com/wealthpath/datecheck/internal/config"
	"github.com/wealthpath/datecheck/internal/logger"
	"github.com/wealthpath/datecheck/internal/model"
	"github.com/wealthpath/datecheck/internal/service"
)

type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	svc        *service.CheckService
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "datecheck",
		Short:         "Validate and compare calendar dates and clock times",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperror.Usage(err.Error())
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (toml, yaml or json)")
	flags.Int("reference-year", 0, "latest valid year for dates, 0 for the current year")
	flags.Bool("strict-time", false, "reject negative hours and minutes")
	flags.String("output", config.OutputText, "output format: text or json")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	mustBind(a.v, config.KeyReferenceYear, flags.Lookup("reference-year"))
	mustBind(a.v, config.KeyStrictTime, flags.Lookup("strict-time"))
	mustBind(a.v, config.KeyOutput, flags.Lookup("output"))
	mustBind(a.v, config.KeyLogLevel, flags.Lookup("log-level"))

	root.AddCommand(
		&cobra.Command{
			Use:   "date <month/day/year>...",
			Short: "check that each argument is a valid calendar date",
			Args:  minArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.check(cmd, args, model.KindDate, a.svc.CheckDate)
			},
		},
		&cobra.Command{
			Use:   "time [--] <hour:minute>...",
			Short: "check that each argument is a valid clock time",
			Long:  "Check that each argument is a valid clock time. Separate negative times from flags with --.",
			Args:  minArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.check(cmd, args, model.KindTime, a.svc.CheckTime)
			},
		},
		&cobra.Command{
			Use:   "compare-dates <month/day/year> <month/day/year>",
			Short: "report whether the first date is before, equal to or after the second",
			Args:  exactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.compare(cmd, args, model.KindDate, a.svc.CompareDates)
			},
		},
		&cobra.Command{
			Use:   "compare-times <hour:minute> <hour:minute>",
			Short: "report whether the first time is before, equal to or after the second",
			Args:  exactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.compare(cmd, args, model.KindTime, a.svc.CompareTimes)
			},
		},
		&cobra.Command{
			Use:   "today",
			Short: "check the current system date",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printVerdicts(cmd.OutOrStdout(), []*model.Verdict{a.svc.Today(cmd.Context())})
			},
		},
		&cobra.Command{
			Use:   "now",
			Short: "check the current system time of day",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printVerdicts(cmd.OutOrStdout(), []*model.Verdict{a.svc.Now(cmd.Context())})
			},
		},
		&cobra.Command{
			Use:   "smoke",
			Short: "run the built-in fixed scenarios",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.smoke(cmd)
			},
		},
	)
	return root
}

// mustBind panics if flag cannot be bound to key, which only happens when
// the flag was never defined.
func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

func (a *app) init(cmd *cobra.Command) error {
	if a.configFile != "" {
		if err := config.ReadFile(a.v, a.configFile); err != nil {
			return apperror.Wrap(apperror.ErrUsage, err.Error())
		}
	}
	a.cfg = config.FromViper(a.v)
	if err := a.cfg.Validate(); err != nil {
		return apperror.Usage(err.Error())
	}
	logger.Setup(cmd.ErrOrStderr(), a.cfg.IsProduction(), a.cfg.LogLevel)
	a.svc = service.NewCheckService(a.cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(service.NewRun(ctx, cmd.Name()))
	logger.FromContext(cmd.Context()).Debug("starting", "reference_year", a.svc.ReferenceYear(), "strict_time", a.cfg.StrictTime)
	return nil
}

func (a *app) check(cmd *cobra.Command, args []string, kind model.Kind, fn func(context.Context, string) (*model.Verdict, error)) error {
	verdicts := make([]*model.Verdict, 0, len(args))
	for _, arg := range args {
		v, err := fn(cmd.Context(), arg)
		if err != nil {
			return apperror.Malformed(string(kind), err)
		}
		verdicts = append(verdicts, v)
	}
	return a.printVerdicts(cmd.OutOrStdout(), verdicts)
}

func (a *app) compare(cmd *cobra.Command, args []string, kind model.Kind, fn func(context.Context, string, string) (*model.Comparison, error)) error {
	c, err := fn(cmd.Context(), args[0], args[1])
	if err != nil {
		return apperror.Malformed(string(kind), err)
	}
	w := cmd.OutOrStdout()
	if a.cfg.Output == config.OutputJSON {
		return writeJSON(w, c)
	}
	if _, err := fmt.Fprintf(w, "%s %s %s\n", c.A, c.Order, c.B); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (a *app) smoke(cmd *cobra.Command) error {
	report, err := a.svc.Smoke(cmd.Context())
	if err != nil {
		return apperror.Internal(err)
	}
	w := cmd.OutOrStdout()
	if a.cfg.Output == config.OutputJSON {
		err = writeJSON(w, report)
	} else {
		for _, r := range report.Results {
			status := "ok"
			if !r.Pass {
				status = "FAIL"
			}
			if _, err = fmt.Fprintf(w, "%-4s %-12s %-5v %s\n", status, r.Case.Input, r.Verdict.Valid, r.Case.Note); err != nil {
				break
			}
		}
	}
	if err != nil {
		return apperror.Internal(err)
	}
	if report.Failed > 0 {
		return apperror.Mismatch(report.Failed)
	}
	return nil
}

func (a *app) printVerdicts(w io.Writer, verdicts []*model.Verdict) error {
	if a.cfg.Output == config.OutputJSON {
		return writeJSON(w, verdicts)
	}
	for _, v := range verdicts {
		line := fmt.Sprintf("%s %v", v.Input, v.Valid)
		if v.Reason != "" {
			line += " (" + v.Reason + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return apperror.Internal(err)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return apperror.Usage(fmt.Sprintf("%s: expected at least %d argument(s), got %d", cmd.Name(), n, len(args)))
		}
		return nil
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return apperror.Usage(fmt.Sprintf("%s: expected %d argument(s), got %d", cmd.Name(), n, len(args)))
		}
		return nil
	}
}
