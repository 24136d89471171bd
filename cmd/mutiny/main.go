package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"
)

const requestTimeout = 2 * time.Minute

var (
	mutinyDataDir = btcutil.AppDataDir("mutiny-cli", false)
	statePath     = path.Join(mutinyDataDir, "state.json")

	httpClient = &http.Client{Timeout: requestTimeout}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "mutiny CLI"
	app.Usage = "Command line interface for the mutinyd wallet daemon"
	app.Commands = append(
		app.Commands,
		&config,
		&state,
		&setup,
		&syncwallet,
		&parse,
		&settings,
		&fiat,
		&balance,
		&contacts,
		&federations,
		&webhook,
		&deletewallet,
	)
	return app
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid config state: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(mutinyDataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(mutinyDataDir, os.ModeDir|0755); err != nil {
			return err
		}
	}

	currentData, err := getState()
	if err != nil {
		currentData = map[string]string{}
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func getDaemonURL() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	address, ok := state["rpcserver"]
	if !ok {
		return "", errors.New("set rpcserver with `config set rpcserver`")
	}
	if !strings.HasPrefix(address, "http://") &&
		!strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}
	return strings.TrimSuffix(address, "/"), nil
}

// doRequest calls the daemon API and decodes the response into res, if not
// nil.
func doRequest(method, endpoint string, body, res interface{}) error {
	baseURL, err := getDaemonURL()
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unable to connect to daemon: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}{}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil ||
			apiErr.Error == "" {
			return fmt.Errorf("daemon replied with status %d", resp.StatusCode)
		}
		return errors.New(apiErr.Error)
	}

	if res == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(res)
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonBytes))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[mutiny] %v\n", err)
	}
	os.Exit(1)
}
