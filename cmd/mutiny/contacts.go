package main

import (
	"fmt"
	"net/http"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var contacts = cli.Command{
	Name:   "contacts",
	Usage:  "list the contacts of the wallet",
	Action: listContactsAction,
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "add a new contact",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the contact",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "npub",
					Usage: "the nostr public key of the contact",
				},
				&cli.StringFlag{
					Name:  "ln-address",
					Usage: "the lightning address of the contact",
				},
			},
			Action: addContactAction,
		},
	},
}

var federations = cli.Command{
	Name:   "federations",
	Usage:  "list the federations the wallet joined",
	Action: listFederationsAction,
	Subcommands: []*cli.Command{
		{
			Name:      "join",
			Usage:     "join a federation with its invite code",
			ArgsUsage: "<invite code>",
			Action:    joinFederationAction,
		},
	},
}

func listContactsAction(ctx *cli.Context) error {
	var resp []map[string]interface{}
	if err := doRequest(http.MethodGet, "/v1/contacts", nil, &resp); err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func addContactAction(ctx *cli.Context) error {
	contact := domain.Contact{
		Name:      ctx.String("name"),
		Npub:      ctx.String("npub"),
		LnAddress: ctx.String("ln-address"),
	}
	if err := contact.Validate(); err != nil {
		return err
	}

	var resp map[string]string
	if err := doRequest(http.MethodPost, "/v1/contacts", contact, &resp); err != nil {
		return err
	}

	fmt.Println("contact id:", resp["id"])
	return nil
}

func listFederationsAction(ctx *cli.Context) error {
	var resp []map[string]interface{}
	if err := doRequest(http.MethodGet, "/v1/federations", nil, &resp); err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func joinFederationAction(ctx *cli.Context) error {
	invite := ctx.Args().First()
	if invite == "" {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	var resp map[string]interface{}
	if err := doRequest(http.MethodPost, "/v1/federations", map[string]string{
		"invite_code": invite,
	}, &resp); err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
