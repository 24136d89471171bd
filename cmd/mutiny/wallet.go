package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/urfave/cli/v2"
)

var state = cli.Command{
	Name:   "state",
	Usage:  "print the current state of the wallet",
	Action: stateAction,
}

var setup = cli.Command{
	Name:  "setup",
	Usage: "set the wallet up, unlocking it with the given password",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "password",
			Usage: "the password of the wallet, if any",
		},
	},
	Action: setupAction,
}

var syncwallet = cli.Command{
	Name:   "sync",
	Usage:  "sync the wallet balance",
	Action: syncAction,
}

var parse = cli.Command{
	Name:      "parse",
	Usage:     "handle an address, invoice, lnurl or any other incoming string",
	ArgsUsage: "<string>",
	Action:    parseAction,
}

var balance = cli.Command{
	Name:   "balance",
	Usage:  "print the balance of the wallet",
	Action: balanceAction,
}

var deletewallet = cli.Command{
	Name:  "delete-wallet",
	Usage: "delete the wallet and all its data",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "yes",
			Usage: "confirm the deletion",
		},
	},
	Action: deleteWalletAction,
}

func stateAction(ctx *cli.Context) error {
	var resp map[string]interface{}
	if err := doRequest(http.MethodGet, "/v1/state", nil, &resp); err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func setupAction(ctx *cli.Context) error {
	var resp map[string]interface{}
	if err := doRequest(http.MethodPost, "/v1/setup", map[string]string{
		"password": ctx.String("password"),
	}, &resp); err != nil {
		return err
	}

	fmt.Println("wallet is ready")
	return nil
}

func syncAction(ctx *cli.Context) error {
	var resp map[string]interface{}
	if err := doRequest(http.MethodPost, "/v1/sync", nil, &resp); err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func parseAction(ctx *cli.Context) error {
	str := strings.TrimSpace(ctx.Args().First())
	if str == "" {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	var resp map[string]interface{}
	if err := doRequest(http.MethodPost, "/v1/incoming", map[string]string{
		"str": str,
	}, &resp); err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func balanceAction(ctx *cli.Context) error {
	var resp map[string]interface{}
	if err := doRequest(http.MethodGet, "/v1/balance", nil, &resp); err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func deleteWalletAction(ctx *cli.Context) error {
	if !ctx.Bool("yes") {
		return fmt.Errorf("this deletes the wallet for good, confirm with --yes")
	}
	if err := doRequest(http.MethodPost, "/v1/wallet/delete", nil, nil); err != nil {
		return err
	}

	fmt.Println("wallet has been deleted")
	return nil
}
