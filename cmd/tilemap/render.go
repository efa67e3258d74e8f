package main

import (
	"context"
	"errors"
	"image"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bodgit/tilemap"
	"github.com/bodgit/tilemap/export"
	"github.com/bodgit/tilemap/store"
	"github.com/urfave/cli/v2"
)

var renderCommand = &cli.Command{
	Name:      "render",
	Usage:     "Render stored maps to image files",
	ArgsUsage: "NAME [FILE]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "all",
			Usage: "render every stored map",
		},
		&cli.StringFlag{
			Name:  "out-dir",
			Value: ".",
			Usage: "output directory used with --all",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   export.PNG,
			Usage:   "output format used with --all (png, gif or bmp)",
		},
	},
	Action: func(c *cli.Context) error {
		db, err := openStore(c)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer db.Close()

		if c.Bool("all") {
			if err := renderAll(db, c.String("out-dir"), c.String("format"), logger(c)); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		}

		if c.NArg() < 1 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		name := c.Args().First()

		m, err := db.Load(name)
		if err != nil {
			return cli.Exit(err, 1)
		}

		file := name + "." + export.PNG
		if c.NArg() > 1 {
			file = c.Args().Get(1)
		}

		if err := renderMap(m, file); err != nil {
			return cli.Exit(err, 1)
		}

		logger(c).Printf("rendered %q to %s\n", name, file)

		return nil
	},
}

// renderMap draws m at full size and encodes it to file, picking the
// format from the file extension.
func renderMap(m *tilemap.Map, file string) error {
	format := strings.TrimPrefix(filepath.Ext(file), ".")
	if format == "" {
		format = export.PNG
	}

	opts := m.Tileset().Options()
	w := m.Width() * int(opts.TileWidth)
	h := m.Height() * int(opts.TileHeight)

	dst := tilemap.NewImageSurface(image.NewRGBA(image.Rect(0, 0, w, h)))
	m.Render(dst, 0, 0)

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	return export.Encode(f, dst.Image(), format)
}

// renderAll renders every stored map into dir, one worker per CPU.
func renderAll(db *store.DB, dir, format string, logger *log.Logger) error {
	names, err := db.List()
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	in, errc := produceNames(ctx, names)

	errcList := []<-chan error{errc}
	for i := 0; i < runtime.NumCPU(); i++ {
		errcList = append(errcList, renderWorker(db, in, dir, format, logger))
	}

	return waitForPipeline(errcList...)
}

func produceNames(ctx context.Context, names []string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, name := range names {
			select {
			case out <- name:
			case <-ctx.Done():
				errc <- errors.New("render cancelled")
				return
			}
		}
	}()
	return out, errc
}

func renderWorker(db *store.DB, in <-chan string, dir, format string, logger *log.Logger) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for name := range in {
			m, err := db.Load(name)
			if err != nil {
				errc <- err
				return
			}

			file := filepath.Join(dir, name+"."+format)
			if err := renderMap(m, file); err != nil {
				errc <- err
				return
			}

			logger.Printf("rendered %q to %s\n", name, file)
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
