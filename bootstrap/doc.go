// Package bootstrap wires a typed config, logger and component registry into
// a single task lifecycle for command-line tools.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(redis.NewComponent(cfg.Redis, app.Logger))
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return doWork(ctx)
//	})
package bootstrap
