package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/tilemap"
	"github.com/bodgit/tilemap/store"
	"github.com/urfave/cli/v2"
)

const defaultDB = "tilemap.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func logger(c *cli.Context) *log.Logger {
	l := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		l.SetOutput(os.Stderr)
	}
	return l
}

func openStore(c *cli.Context) (*store.DB, error) {
	return store.New(c.String("db"))
}

func main() {
	app := cli.NewApp()

	app.Name = "tilemap"
	app.Usage = "tile map management utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TILEMAP_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "import",
			Usage:     "Import a map from a JSON document",
			ArgsUsage: "FILE [NAME]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()

				b, err := os.ReadFile(file)
				if err != nil {
					return cli.Exit(err, 1)
				}

				var m tilemap.Map
				if err := json.Unmarshal(b, &m); err != nil {
					return cli.Exit(err, 1)
				}

				name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
				if c.NArg() > 1 {
					name = c.Args().Get(1)
				}

				db, err := openStore(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := db.Save(name, &m); err != nil {
					return cli.Exit(err, 1)
				}

				logger(c).Printf("imported %q from %s\n", name, file)

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Export a stored map as a JSON document",
			ArgsUsage: "NAME [FILE]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := openStore(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				m, err := db.Load(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				b, err := json.MarshalIndent(m, "", "  ")
				if err != nil {
					return cli.Exit(err, 1)
				}

				if c.NArg() > 1 {
					if err := os.WriteFile(c.Args().Get(1), b, 0o644); err != nil {
						return cli.Exit(err, 1)
					}
					return nil
				}

				fmt.Println(string(b))

				return nil
			},
		},
		{
			Name:  "ls",
			Usage: "List stored maps",
			Action: func(c *cli.Context) error {
				db, err := openStore(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				names, err := db.List()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, name := range names {
					fmt.Println(name)
				}

				return nil
			},
		},
		{
			Name:      "rm",
			Usage:     "Delete a stored map",
			ArgsUsage: "NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := openStore(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := db.Delete(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		renderCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
