package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var webhook = cli.Command{
	Name:  "webhook",
	Usage: "manage the webhooks notified about wallet events",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "add a webhook registered for some event",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "endpoint",
					Usage:    "the endpoint where to notify the webhook",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "secret",
					Usage: "the eventual secret to authenticate requests",
				},
				&cli.StringFlag{
					Name:  "event",
					Usage: "the event for which the webhook gets notified, * for all",
					Value: "*",
				},
			},
			Action: addWebhookAction,
		},
		{
			Name:      "remove",
			Usage:     "remove a webhook",
			ArgsUsage: "<id>",
			Action:    removeWebhookAction,
		},
		{
			Name:  "list",
			Usage: "list the webhooks registered for some event",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "event",
					Usage: "the event to filter hooks by",
				},
			},
			Action: listWebhooksAction,
		},
	},
}

func addWebhookAction(ctx *cli.Context) error {
	var resp map[string]string
	if err := doRequest(http.MethodPost, "/v1/webhooks", map[string]string{
		"event":    ctx.String("event"),
		"endpoint": ctx.String("endpoint"),
		"secret":   ctx.String("secret"),
	}, &resp); err != nil {
		return err
	}

	fmt.Println("hook id:", resp["id"])
	return nil
}

func removeWebhookAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}
	if err := doRequest(
		http.MethodDelete, "/v1/webhooks/"+url.PathEscape(id), nil, nil,
	); err != nil {
		return err
	}

	fmt.Println("hook has been removed")
	return nil
}

func listWebhooksAction(ctx *cli.Context) error {
	endpoint := "/v1/webhooks"
	if event := ctx.String("event"); event != "" {
		endpoint += "?" + url.Values{"event": {event}}.Encode()
	}

	var resp []map[string]interface{}
	if err := doRequest(http.MethodGet, endpoint, nil, &resp); err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
