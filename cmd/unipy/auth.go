package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	unipy "github.com/lexfrei/go-unipy"
	"github.com/lexfrei/go-unipy/internal/profile"
	"github.com/lexfrei/go-unipy/network"
	"github.com/lexfrei/go-unipy/observability"
)

func newAuthCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all configured authentications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuthList(cmd, opts)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check NAME",
		Short: "Log in with a configured authentication and verify its site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthCheck(cmd, opts, args[0])
		},
	})

	return cmd
}

func findProfile(path, name string) (*profile.Profile, error) {
	profiles, err := profile.Load(path)
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i], nil
		}
	}

	return nil, errors.Newf("no authentication named %q in %s", name, path)
}

func runAuthCheck(cmd *cobra.Command, opts *options, name string) error {
	p, err := findProfile(opts.configPath, name)
	if err != nil {
		return err
	}

	cfg := p.ConnectionConfig()
	cfg.Logger = opts.logger.With(observability.Field{Key: "profile", Value: p.Name})

	client, err := unipy.NewWithConfig(cfg, network.WithSite(p.SiteName()))
	if err != nil {
		return errors.Wrapf(err, "authentication %q", p.Name)
	}

	ctx := cmd.Context()
	if err := client.Login(ctx); err != nil {
		return errors.Wrapf(err, "authentication %q", p.Name)
	}
	defer func() {
		if err := client.Logout(ctx); err != nil {
			opts.logger.Warn("logout failed", observability.Err(err))
		}
	}()

	sites, err := client.Network().ListSites(ctx)
	if err != nil {
		return errors.Wrapf(err, "authentication %q", p.Name)
	}

	for _, site := range sites {
		if site.Name() == p.SiteName() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (site %s, %s)\n", p.Name, site.Name(), site.Description())
			return nil
		}
	}

	return errors.Newf("authentication %q: site %q not found on %s", p.Name, p.SiteName(), p.Server)
}

func runAuthList(cmd *cobra.Command, opts *options) error {
	profiles, err := profile.Load(opts.configPath)
	if err != nil {
		return err
	}

	opts.logger.Debug("loaded profiles",
		observability.Field{Key: "path", Value: opts.configPath},
		observability.Field{Key: "count", Value: len(profiles)},
	)

	out := cmd.OutOrStdout()
	if len(profiles) == 0 {
		fmt.Fprintf(out, "no authentications configured in %s\n", opts.configPath)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSERVER\tSITE\tAUTH\tVERIFY TLS")
	for i := range profiles {
		p := &profiles[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", p.Name, p.Server, p.SiteName(), p.AuthMethod(), !p.InsecureSkipVerify)
	}

	return w.Flush()
}
