package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/utilkit/bootstrap"
	"github.com/kbukum/utilkit/httpclient"
	"github.com/kbukum/utilkit/observability"
	"github.com/kbukum/utilkit/redis"
	"github.com/kbukum/utilkit/version"
)

// usage selects the components a command starts.
type usage int

const (
	useRedis usage = 1 << iota
	useHTTP
)

type cli struct {
	configPath string
	envFile    string
}

// session is what a command sees once its components are started.
type session struct {
	cfg  *appConfig
	app  *bootstrap.App[*appConfig]
	kv   *redis.KeyValueAccess
	http *httpclient.Adapter
	out  io.Writer
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "utilkit",
		Short: "Run Redis and REST operations from the command line",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to config file")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "path to .env file")

	root.AddCommand(
		c.getCmd(), c.setCmd(), c.delCmd(), c.hgetallCmd(), c.zrevrangeCmd(),
		c.httpCmd(), c.healthCmd(), versionCmd(),
	)
	return root
}

// run loads config, starts the components named by use and runs fn inside
// the app lifecycle.
func (c *cli) run(cmd *cobra.Command, use usage, fn func(ctx context.Context, s *session) error) error {
	cfg, err := loadConfig(c.configPath, c.envFile)
	if err != nil {
		return err
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	tp, err := observability.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	if tp != nil {
		app.OnStop(tp.Shutdown)
	}

	var redisComp *redis.Component
	var httpComp *httpclient.Component
	if use&useRedis != 0 {
		redisComp = redis.NewComponent(cfg.Redis, app.Logger)
		if err := app.RegisterComponent(redisComp); err != nil {
			return err
		}
	}
	if use&useHTTP != 0 {
		httpComp = httpclient.NewComponent(cfg.HTTP, httpclient.WithLogger(app.Logger))
		if err := app.RegisterComponent(httpComp); err != nil {
			return err
		}
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		s := &session{cfg: cfg, app: app, out: cmd.OutOrStdout()}
		if redisComp != nil {
			s.kv = redisComp.KV()
		}
		if httpComp != nil {
			s.http = httpComp.Adapter()
		}
		return fn(ctx, s)
	})
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serviceName, info)
			return nil
		},
	}
}
