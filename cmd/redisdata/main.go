package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli"

	"github.com/philippgille/redisdata"
)

func openClient(c *cli.Context) (*redisdata.Client, error) {
	config, err := readConfig(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}
	return newClient(*config)
}

func get(c *cli.Context) error {
	key := c.Args().First()
	if len(key) == 0 {
		return errors.New("invalid key")
	}

	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	s, found, err := client.GetString(context.Background(), key)
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("not found")
		return nil
	}

	fmt.Println(s)
	return nil
}

func set(c *cli.Context) error {
	key := c.Args().Get(0)
	if len(key) == 0 {
		return errors.New("invalid key")
	}
	value := c.Args().Get(1)
	if len(value) == 0 {
		return errors.New("invalid value")
	}

	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	notify := c.Bool("notify")

	// Store JSON input as a structured value, anything else verbatim.
	var valueJson interface{}
	if json.Unmarshal([]byte(value), &valueJson) == nil {
		return client.Set(ctx, key, valueJson, notify)
	}
	return client.SetString(ctx, key, value, notify)
}

func del(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("no keys given")
	}

	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	result, err := client.Delete(context.Background(), c.Args()...)
	if err != nil {
		return err
	}

	fmt.Printf("deleted %d key(s)\n", result.Deleted)
	if len(result.Missing) > 0 {
		fmt.Printf("not found: %s\n", strings.Join(result.Missing, ", "))
	}
	return nil
}

func keys(c *cli.Context) error {
	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	keys, err := client.Keys(context.Background(), c.Args().First())
	if err != nil {
		return err
	}

	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}

func stats(c *cli.Context) error {
	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	var all []redisdata.KeyStats
	if key := c.Args().First(); len(key) > 0 {
		stats, found, err := client.Stats(ctx, key)
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("not found")
			return nil
		}
		all = []redisdata.KeyStats{stats}
	} else {
		all, err = client.StatsAll(ctx)
		if err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tITEMS\tBYTES\tMB")
	for _, stats := range all {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.3f\n", stats.Key, stats.Type, stats.Items, stats.Bytes, stats.MB())
	}
	return w.Flush()
}

func main() {
	app := cli.NewApp()
	app.Name = "redisdata"
	app.Usage = "A cli tool for publishing and inspecting data in Redis"
	app.HideVersion = true

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Value: "./redisdata.yaml",
			Usage: "path to config",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "get",
			Usage:     "get key value",
			UsageText: "get <KEY>",
			Action:    get,
		},
		{
			Name:      "set",
			Usage:     "set key value",
			UsageText: "set <KEY> <VALUE>",
			Action:    set,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "notify",
					Usage: "also publish the value on the pub/sub channel named after the key",
				},
			},
		},
		{
			Name:      "del",
			Usage:     "delete keys",
			UsageText: "del <KEY>...",
			Action:    del,
		},
		{
			Name:      "keys",
			Usage:     "list keys matching a pattern",
			UsageText: "keys [PATTERN]",
			Action:    keys,
		},
		{
			Name:      "stats",
			Usage:     "show key statistics",
			UsageText: "stats [KEY]",
			Action:    stats,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
