// Package command provides CLI command definitions for zkadmin.
package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tresorit/zerokit-admin-go/pkg/adminapi"
)

// CallCommand returns the raw request escape hatch.
func CallCommand() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "Send a signed request to any admin endpoint",
		ArgsUsage: "METHOD PATH",
		Description: "Signs and sends a raw request, for endpoints without a dedicated\n" +
			"subcommand. Example:\n\n" +
			"   zkadmin call POST /api/v4/admin/user/init-user-registration\n" +
			"   zkadmin call PUT /api/v4/admin/tenant/upload-custom-content \\\n" +
			"       --query fileName=css/login.css --data @login.css",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Request body; @FILE reads the body from a file",
			},
			&cli.StringSliceFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Query parameter NAME=VALUE, or NAME alone for a bare flag; repeatable",
			},
			&cli.StringSliceFlag{
				Name:    "header",
				Aliases: []string{"H"},
				Usage:   "Header NAME:VALUE; repeatable",
			},
			&cli.StringFlag{
				Name:  "content-type",
				Usage: "Content-Type header",
			},
		},
		Action: callAction,
	}
}

func callAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("method and path required, e.g. zkadmin call GET /api/v4/admin/...")
	}
	method := c.Args().Get(0)
	path := c.Args().Get(1)

	client, err := newClient(c)
	if err != nil {
		return err
	}

	req := client.NewRequest(method, path)

	for _, q := range c.StringSlice("query") {
		if name, value, ok := strings.Cut(q, "="); ok {
			req.AddQuery(name, value)
		} else {
			req.AddQueryFlag(q)
		}
	}
	for _, h := range c.StringSlice("header") {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("header %q is not NAME:VALUE", h)
		}
		req.AddHeader(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	if ct := c.String("content-type"); ct != "" {
		req.SetHeader(adminapi.HeaderContentType, ct)
	}
	if data := c.String("data"); data != "" {
		if file, ok := strings.CutPrefix(data, "@"); ok {
			body, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}
			req.SetContents(body)
		} else {
			req.SetContentsString(data)
		}
	}

	ctx, cancel := timeoutContext(c)
	defer cancel()

	resp, err := req.Send(ctx)
	if err != nil {
		return err
	}

	if len(resp.Bytes()) == 0 {
		fmt.Println(resp.Status())
		return nil
	}

	var result any
	if err := resp.JSON(&result); err == nil {
		return newFormatter(c).Format(os.Stdout, result)
	}
	text, err := resp.Text()
	if err != nil {
		fmt.Printf("%s, %d bytes of binary data\n", resp.Status(), len(resp.Bytes()))
		return nil
	}
	fmt.Println(text)
	return nil
}
