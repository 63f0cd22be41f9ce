// Package command provides CLI command definitions for zkadmin.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/tresorit/zerokit-admin-go/internal/cli/content"
	"github.com/tresorit/zerokit-admin-go/pkg/adminapi"
)

// TenantCommand returns the tenant subcommand group.
func TenantCommand() *cli.Command {
	return &cli.Command{
		Name:  "tenant",
		Usage: "Manage tenant-level settings and custom content",
		Subcommands: []*cli.Command{
			{
				Name:  "upload-content",
				Usage: "Upload one custom content file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Remote file name (e.g. css/login.css)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "content-type",
						Usage: "Content type; detected from the name when omitted",
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "Local file to read, or - for stdin",
						Value: "-",
					},
				},
				Action: tenantUploadContent,
			},
			{
				Name:      "sync-content",
				Usage:     "Upload a whole content directory",
				ArgsUsage: "DIR",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "watch",
						Aliases: []string{"w"},
						Usage:   "Keep running and re-upload changed files",
					},
				},
				Action: tenantSyncContent,
			},
		},
	}
}

func tenantUploadContent(c *cli.Context) error {
	name := c.String("name")
	if name == "" {
		return fmt.Errorf("remote file name required")
	}

	var data []byte
	var err error
	if src := c.String("from"); src == "" || src == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	contentType := c.String("content-type")
	if contentType == "" {
		contentType = content.TypeByName(name)
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	ctx, cancel := timeoutContext(c)
	defer cancel()

	req := client.NewRequest(http.MethodPut, content.UploadPath).
		AddQuery("fileName", name).
		SetHeader(adminapi.HeaderContentType, contentType).
		SetContents(data)
	if _, err := req.Send(ctx); err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Printf("Uploaded %s (%d bytes).\n", name, len(data))
	return nil
}

func tenantSyncContent(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		return fmt.Errorf("content directory required")
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}
	env := getEnv(c)

	uploader := content.NewUploader(client, env.logger)

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	n, err := uploader.SyncDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("sync failed after %d uploads: %w", n, err)
	}
	fmt.Printf("Uploaded %d files from %s.\n", n, dir)

	if !c.Bool("watch") {
		return nil
	}

	watcher, err := content.NewWatcher(uploader, dir, env.logger)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer watcher.Stop()

	fmt.Printf("Watching %s for changes, Ctrl-C to stop.\n", dir)
	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
