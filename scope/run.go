// Package scope implements "scope" command: it rewrites stylesheet file so
// every rule is placed under configured scoping selector.
package scope

import (
	"context"
	"fmt"
	"io"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"scopecss/common"
	"scopecss/config"
	"scopecss/css"
	"scopecss/state"
)

func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("scope")

	args := cmd.Args().Slice()
	if len(args) > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", args[2:]))
		args = args[:2]
	}
	src, dst := resolvePaths(args, &env.Cfg.Scoping)

	// command line overwrites configuration for this run only
	conf := env.Cfg.Scoping
	if prefix := cmd.String("prefix"); len(prefix) > 0 {
		conf.Prefix = prefix
	}
	if cmd.IsSet("nested") {
		mode, err := common.ParseNestedMode(cmd.String("nested"))
		if err != nil {
			log.Warn("Unknown nested blocks mode requested, using configured", zap.Stringer("mode", conf.Nested), zap.Error(err))
		} else {
			conf.Nested = mode
		}
	}

	if cmd.Bool("make-backup") {
		if err := makeBackup(src, dst, log); err != nil {
			return err
		}
	}

	var out io.Writer
	if cmd.Bool("stdout") {
		out = env.Out
	}

	log.Info("Processing starting",
		zap.String("source", src), zap.String("destination", dst),
		zap.String("prefix", conf.Prefix), zap.Stringer("nested", conf.Nested))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, out, &conf, env, log)
}

// process handles the core logic independently of CLI framework. When out is
// not nil result goes there and dst is left alone.
func process(ctx context.Context, src, dst string, out io.Writer, conf *config.ScopingConfig, env *state.LocalEnv, log *zap.Logger) error {
	opts := []css.Option{css.WithNestedMode(conf.Nested)}
	if env.Rpt != nil {
		opts = append(opts, css.WithTrace())
	}
	rw := css.NewRewriter(css.NewScoper(conf.Prefix, conf.Exempt), log, opts...)

	if out != nil {
		text, err := Load(ctx, src)
		if err != nil {
			return err
		}
		res := rw.Rewrite(text)
		logStats(log, res)
		if _, err := io.WriteString(out, res.Text); err != nil {
			return fmt.Errorf("unable to output result: %w", err)
		}
		return nil
	}

	if samePath(src, dst) {
		log.Warn("Source and destination are the same file, unscoped original will be lost", zap.String("file", dst))
	}

	if env.Rpt != nil {
		if err := env.Rpt.StoreCopy("input.css", src); err != nil {
			log.Debug("Unable to store source in report", zap.Error(err))
		}
	}

	res, err := Transform(ctx, src, dst, rw)
	if err != nil {
		return err
	}
	logStats(log, res)

	if env.Rpt != nil {
		env.Rpt.StoreData("trace.txt", renderTrace(src, dst, conf, res))
		env.Rpt.Store("output.css", dst)
	}

	confirm(env.Out, dst)
	return nil
}

func logStats(log *zap.Logger, res *css.Result) {
	log.Info("Stylesheet scoped",
		zap.Int("rules", res.Stats.Rules),
		zap.Int("scoped", res.Stats.Scoped),
		zap.Int("unchanged", res.Stats.Unchanged),
		zap.Int("verbatim", res.Stats.Verbatim))
	if res.Stats.Rules == 0 {
		log.Warn("No rules found in stylesheet")
	}
}
