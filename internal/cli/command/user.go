// Package command provides CLI command definitions for zkadmin.
package command

import (
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"
)

// User endpoints of the tenant administration API.
const (
	pathInitUserRegistration = "/api/v4/admin/user/init-user-registration"
	pathValidateUser         = "/api/v4/admin/user/validate-user"
	pathSetUserState         = "/api/v4/admin/user/set-user-state"
)

// UserCommand returns the user subcommand group.
func UserCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage tenant users",
		Subcommands: []*cli.Command{
			{
				Name:    "init-registration",
				Aliases: []string{"init"},
				Usage:   "Start a new user registration session",
				Action:  userInitRegistration,
			},
			{
				Name:  "validate",
				Usage: "Validate a completed user registration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "session-id",
						Usage:    "Registration session id",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "session-verifier",
						Usage:    "Registration session verifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "validation-verifier",
						Usage:    "Registration validation verifier",
						Required: true,
					},
				},
				Action: userValidate,
			},
			{
				Name:      "set-state",
				Usage:     "Enable or disable a user",
				ArgsUsage: "USERID",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "enabled",
						Usage: "Enable the user",
					},
					&cli.BoolFlag{
						Name:  "disabled",
						Usage: "Disable the user",
					},
				},
				Action: userSetState,
			},
		},
	}
}

func userInitRegistration(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	ctx, cancel := timeoutContext(c)
	defer cancel()

	var result map[string]any
	if err := client.CallJSON(ctx, http.MethodPost, pathInitUserRegistration, nil, &result); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	return newFormatter(c).Format(os.Stdout, result)
}

func userValidate(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	ctx, cancel := timeoutContext(c)
	defer cancel()

	body := map[string]any{
		"RegSessionId":          c.String("session-id"),
		"RegSessionVerifier":    c.String("session-verifier"),
		"RegValidationVerifier": c.String("validation-verifier"),
	}

	req := client.NewRequest(http.MethodPost, pathValidateUser).SetJSONContents(body)
	resp, err := req.Send(ctx)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if len(resp.Bytes()) == 0 {
		fmt.Println("User registration validated.")
		return nil
	}

	var result any
	if err := resp.JSON(&result); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return newFormatter(c).Format(os.Stdout, result)
}

func userSetState(c *cli.Context) error {
	userID := c.Args().First()
	if userID == "" {
		return fmt.Errorf("user ID required")
	}
	if c.Bool("enabled") == c.Bool("disabled") {
		return fmt.Errorf("exactly one of --enabled or --disabled is required")
	}
	enabled := c.Bool("enabled")

	client, err := newClient(c)
	if err != nil {
		return err
	}

	ctx, cancel := timeoutContext(c)
	defer cancel()

	body := map[string]any{
		"UserId":  userID,
		"Enabled": enabled,
	}
	req := client.NewRequest(http.MethodPost, pathSetUserState).SetJSONContents(body)
	if _, err := req.Send(ctx); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if enabled {
		fmt.Printf("User %s enabled.\n", userID)
	} else {
		fmt.Printf("User %s disabled.\n", userID)
	}
	return nil
}
