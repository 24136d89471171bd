package main

import (
	"fmt"
	"net/http"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var settings = cli.Command{
	Name:  "settings",
	Usage: "get or set the wallet settings",
	Subcommands: []*cli.Command{
		{
			Name:   "get",
			Usage:  "print the resolved settings",
			Action: getSettingsAction,
		},
		{
			Name:      "set",
			Usage:     "override a setting, an empty value unsets it",
			ArgsUsage: "<key> <value>",
			Action:    setSettingAction,
		},
		{
			Name:   "reset",
			Usage:  "drop every override and go back to the defaults",
			Action: resetSettingsAction,
		},
	},
}

var fiat = cli.Command{
	Name:      "fiat",
	Usage:     "select the fiat currency prices are shown in",
	ArgsUsage: "<currency code>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "label",
			Usage: "the label of the currency",
		},
		&cli.IntFlag{
			Name:  "digits",
			Usage: "the max number of fractional digits",
			Value: 2,
		},
	},
	Action: fiatAction,
}

func getSettingsAction(ctx *cli.Context) error {
	var resp domain.Settings
	if err := doRequest(http.MethodGet, "/v1/settings", nil, &resp); err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func setSettingAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}
	key, value := ctx.Args().Get(0), ctx.Args().Get(1)
	if !isSettingKey(key) {
		return fmt.Errorf("unknown setting %s", key)
	}

	if err := doRequest(
		http.MethodPatch, "/v1/settings", map[string]string{key: value}, nil,
	); err != nil {
		return err
	}

	fmt.Printf("%s has been set\n", key)
	return nil
}

func resetSettingsAction(ctx *cli.Context) error {
	if err := doRequest(http.MethodDelete, "/v1/settings", nil, nil); err != nil {
		return err
	}

	fmt.Println("settings have been reset")
	return nil
}

func fiatAction(ctx *cli.Context) error {
	code := ctx.Args().First()
	if code == "" {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	currency := domain.Currency{
		Value:               code,
		Label:               ctx.String("label"),
		MaxFractionalDigits: ctx.Int("digits"),
	}
	var resp map[string]interface{}
	if err := doRequest(http.MethodPost, "/v1/fiat", currency, &resp); err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func isSettingKey(key string) bool {
	for _, k := range domain.SettingsKeys {
		if k == key {
			return true
		}
	}
	return false
}
