// Package command provides CLI command definitions for zkadmin.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tresorit/zerokit-admin-go/internal/cli/profile"
	"github.com/tresorit/zerokit-admin-go/internal/telemetry/logger"
)

// ProfileCommand returns the profile subcommand group.
func ProfileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage stored credential profiles",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add or replace a profile",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "service-url",
						Usage:    "Tenant service URL",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "admin-key",
						Usage:    "Tenant admin key (64 hex characters)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "tenant-id",
						Usage: "Explicit tenant id",
					},
					insecureStoreFlag(),
				},
				Action: profileAdd,
			},
			{
				Name:   "list",
				Usage:  "List profile names",
				Flags:  []cli.Flag{insecureStoreFlag()},
				Action: profileList,
			},
			{
				Name:      "remove",
				Usage:     "Remove a profile",
				ArgsUsage: "NAME",
				Flags:     []cli.Flag{insecureStoreFlag()},
				Action:    profileRemove,
			},
			{
				Name:      "show",
				Usage:     "Show a profile with its admin key masked",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					insecureStoreFlag(),
					&cli.BoolFlag{
						Name:  "show-key",
						Usage: "Print the admin key unmasked",
					},
				},
				Action: profileShow,
			},
		},
	}
}

func insecureStoreFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "insecure-store",
		Usage: "Use the plaintext profile store instead of the encrypted one",
	}
}

func profileAdd(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("profile name required")
	}

	store, err := openStore(c.Bool("insecure-store"))
	if err != nil {
		return err
	}

	p := profile.Profile{
		ServiceURL: c.String("service-url"),
		AdminKey:   c.String("admin-key"),
		TenantID:   c.String("tenant-id"),
	}
	if err := store.Set(name, p); err != nil {
		return err
	}

	fmt.Printf("Profile %q saved.\n", name)
	if c.Bool("insecure-store") {
		fmt.Println("Warning: the admin key is stored in plaintext.")
	}
	return nil
}

func profileList(c *cli.Context) error {
	store, err := openStore(c.Bool("insecure-store"))
	if err != nil {
		return err
	}

	names, err := store.Names()
	if err != nil {
		return err
	}

	env := getEnv(c)
	if env != nil && env.cfg.Output != "table" {
		return newFormatter(c).Format(os.Stdout, names)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	fmt.Printf("\nTotal: %d profiles\n", len(names))
	return nil
}

func profileRemove(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("profile name required")
	}

	store, err := openStore(c.Bool("insecure-store"))
	if err != nil {
		return err
	}
	if err := store.Remove(name); err != nil {
		return err
	}

	fmt.Printf("Profile %q removed.\n", name)
	return nil
}

func profileShow(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("profile name required")
	}

	store, err := openStore(c.Bool("insecure-store"))
	if err != nil {
		return err
	}
	p, err := store.Get(name)
	if err != nil {
		return err
	}

	if !c.Bool("show-key") {
		masked := logger.RedactString(p.AdminKey)
		if masked == p.AdminKey {
			masked = "***"
		}
		p.AdminKey = masked
	}

	view := struct {
		Name       string `json:"name"`
		ServiceURL string `json:"service_url"`
		AdminKey   string `json:"admin_key"`
		TenantID   string `json:"tenant_id,omitempty"`
	}{
		Name:       name,
		ServiceURL: p.ServiceURL,
		AdminKey:   p.AdminKey,
		TenantID:   p.TenantID,
	}
	return newFormatter(c).Format(os.Stdout, view)
}
