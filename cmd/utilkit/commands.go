package main

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/kbukum/utilkit/httpclient"
)

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print a string value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, useRedis, func(ctx context.Context, s *session) error {
				res := s.kv.GetString(ctx, args[0])
				if res.Err != nil {
					return res.Err
				}
				if !res.Found {
					s.printf("(nil)\n")
					return nil
				}
				s.printf("%s\n", res.Value)
				return nil
			})
		},
	}
}

func (c *cli) setCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a string value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, useRedis, func(ctx context.Context, s *session) error {
				if res := s.kv.SetString(ctx, args[0], args[1]); res.Err != nil {
					return res.Err
				}
				if ttl > 0 {
					seconds := int(math.Ceil(ttl.Seconds()))
					if res := s.kv.Expire(ctx, args[0], seconds); res.Err != nil {
						return res.Err
					}
				}
				s.printf("OK\n")
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "expire the key after this duration")
	return cmd
}

func (c *cli) delCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del KEY",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, useRedis, func(ctx context.Context, s *session) error {
				res := s.kv.Delete(ctx, args[0])
				if res.Err != nil {
					return res.Err
				}
				s.printf("(integer) %d\n", res.Value)
				return nil
			})
		},
	}
}

func (c *cli) hgetallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hgetall KEY",
		Short: "Print every field of a hash, sorted by field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, useRedis, func(ctx context.Context, s *session) error {
				res := s.kv.HashGetAll(ctx, args[0])
				if res.Err != nil {
					return res.Err
				}
				fields := make([]string, 0, len(res.Value))
				for f := range res.Value {
					fields = append(fields, f)
				}
				sort.Strings(fields)
				for _, f := range fields {
					s.printf("%s\t%s\n", f, res.Value[f])
				}
				return nil
			})
		},
	}
}

func (c *cli) zrevrangeCmd() *cobra.Command {
	var start, stop int64
	cmd := &cobra.Command{
		Use:   "zrevrange KEY",
		Short: "Print sorted set members from highest to lowest score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, useRedis, func(ctx context.Context, s *session) error {
				res := s.kv.SortedSetRevRangeWithScores(ctx, args[0], start, stop)
				if res.Err != nil {
					return res.Err
				}
				for _, m := range res.Value {
					s.printf("%s\t%g\n", m.Member, m.Score)
				}
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&start, "start", 0, "first rank")
	cmd.Flags().Int64Var(&stop, "stop", -1, "last rank, -1 for all")
	return cmd
}

func (c *cli) httpCmd() *cobra.Command {
	parent := &cobra.Command{
		Use:   "http",
		Short: "Call the configured HTTP service",
	}

	var query []string
	get := &cobra.Command{
		Use:   "get PATH",
		Short: "GET PATH with --query k=v parameters and print the JSON reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parsePairs(query)
			if err != nil {
				return err
			}
			return c.run(cmd, useHTTP, func(ctx context.Context, s *session) error {
				resp, err := httpclient.GetQuery[any](s.http, ctx, args[0], params, nil)
				return s.printJSON(resp, err)
			})
		},
	}
	get.Flags().StringArrayVarP(&query, "query", "q", nil, "query parameter k=v, repeatable")

	var data []string
	var form bool
	post := &cobra.Command{
		Use:   "post PATH",
		Short: "POST --data k=v parameters as JSON (or a form with --form)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parsePairs(data)
			if err != nil {
				return err
			}
			return c.run(cmd, useHTTP, func(ctx context.Context, s *session) error {
				if form {
					resp, err := httpclient.PostForm[any](s.http, ctx, args[0], params, nil)
					return s.printJSON(resp, err)
				}
				resp, err := httpclient.PostJSON[any](s.http, ctx, args[0], params, nil)
				return s.printJSON(resp, err)
			})
		},
	}
	post.Flags().StringArrayVarP(&data, "data", "d", nil, "body parameter k=v, repeatable")
	post.Flags().BoolVar(&form, "form", false, "send the body form-encoded")

	parent.AddCommand(get, post)
	return parent
}

func (c *cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Start every component and print its health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, useRedis|useHTTP, func(ctx context.Context, s *session) error {
				for _, d := range s.app.Components.Describe() {
					s.printf("%s\t%s\t%s\n", d.Name, d.Type, d.Details)
				}
				for _, h := range s.app.Components.HealthAll(ctx) {
					s.printf("%s\t%s\n", h.Name, h.Status)
				}
				return s.app.ReadyCheck(ctx)
			})
		},
	}
}

func (s *session) printJSON(resp *httpclient.TypedResponse[any], err error) error {
	if err != nil {
		return err
	}
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(resp.Data, "", "  ")
	if err != nil {
		return err
	}
	s.printf("%s\n", out)
	return nil
}

// parsePairs turns "k=v" arguments into params. Later keys win.
func parsePairs(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q, want k=v", p)
		}
		params[k] = v
	}
	return params, nil
}
