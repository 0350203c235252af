package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/vpixels"
	"github.com/urfave/cli/v2"
)

const defaultDB = "vpixels.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func main() {
	app := cli.NewApp()

	app.Name = "vpixels"
	app.Usage = "Indexed-colour BMP and GIF utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"VPIXELS_DB"},
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
			Name:        "info",
			Usage:       "Describe BMP and GIF files",
			Description: "",
			ArgsUsage:   "FILE...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				for _, file := range c.Args().Slice() {
					info, err := vpixels.Identify(file)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					fmt.Fprintf(c.App.Writer, "%s: %s %dx%d, %d-bit, %d frame(s), %d colours, sha1 %s\n", info.Path, info.Format, info.Width, info.Height, info.BitDepth, info.Frames, info.ColorTableSize, info.SHA1)
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert an image to BMP or GIF",
			Description: "The output format is chosen by the extension of OUTPUT. PNG, JPEG, BMP and GIF files are accepted as INPUT.",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "depth",
					Aliases: []string{"d"},
					Value:   8,
					Usage:   "output bit depth",
				},
				&cli.IntFlag{
					Name:  "delay",
					Usage: "delay between GIF frames in hundredths of a second",
				},
				&cli.BoolFlag{
					Name:    "overwrite",
					Aliases: []string{"f"},
					Usage:   "replace an existing OUTPUT",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				if err := vpixels.Convert(c.Args().Get(0), c.Args().Get(1), vpixels.ConvertOptions{
					BitDepth:  c.Int("depth"),
					Delay:     c.Int("delay"),
					Overwrite: c.Bool("overwrite"),
				}); err != nil {
					return cli.NewExitError(err, 1)
				}
				logger.Printf("Wrote \"%s\"\n", c.Args().Get(1))

				return nil
			},
		},
		{
			Name:        "extract",
			Usage:       "Write each frame of a GIF as a PNG",
			Description: "",
			ArgsUsage:   "GIF DIRECTORY",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "overwrite",
					Aliases: []string{"f"},
					Usage:   "replace existing files",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				files, err := vpixels.Extract(c.Args().Get(0), c.Args().Get(1), c.Bool("overwrite"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				for _, file := range files {
					logger.Printf("Wrote \"%s\"\n", file)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and catalog images",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "workers",
					Aliases: []string{"w"},
					Value:   vpixels.DefaultWorkers,
					Usage:   "number of files to identify at once",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := vpixels.NewCatalog(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				ix := vpixels.New(db, newLogger(c))

				if err := ix.Scan(context.Background(), c.Args().First(), c.Int("workers")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List catalogued images",
			Description: "",
			Action: func(c *cli.Context) error {
				db, err := vpixels.NewCatalog(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				infos, err := db.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				for _, info := range infos {
					fmt.Fprintf(c.App.Writer, "%s\t%s\t%dx%d\t%d\t%s\n", info.Path, info.Format, info.Width, info.Height, info.Frames, info.SHA1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
