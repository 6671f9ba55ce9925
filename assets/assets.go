// assets loads everything the viewer needs before the first frame: the tuning, an optional glTF file of camera
// waypoints, and the soundtrack's bytes. Each asset is read on its own goroutine.
package assets

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"

	"github.com/solarlune/flightpath"
	"golang.org/x/sync/errgroup"
)

// Manifest names the files to load from a file system. Empty names are skipped.
type Manifest struct {
	Tuning     string // YAML tuning overrides; the embedded defaults are used if empty
	Waypoints  string // glTF file holding the camera path
	PathNode   string // name of the path node inside Waypoints
	Soundtrack string // MP3 or Ogg Vorbis file
}

// Bundle is a loaded Manifest.
type Bundle struct {
	Tuning         *flightpath.Tuning
	Waypoints      []flightpath.Vector3
	Soundtrack     []byte
	SoundtrackName string
}

// Load reads every asset in manifest from fsys concurrently. The first failure cancels the rest and is returned.
func Load(ctx context.Context, fsys fs.FS, manifest Manifest) (*Bundle, error) {

	bundle := &Bundle{SoundtrackName: path.Base(manifest.Soundtrack)}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if manifest.Tuning == "" {
			bundle.Tuning = flightpath.DefaultTuning()
			return nil
		}
		return withFile(ctx, fsys, manifest.Tuning, func(r io.Reader) (err error) {
			bundle.Tuning, err = flightpath.LoadTuning(r)
			return err
		})
	})

	if manifest.Waypoints != "" {
		g.Go(func() error {
			return withFile(ctx, fsys, manifest.Waypoints, func(r io.Reader) (err error) {
				bundle.Waypoints, err = flightpath.LoadWaypointsGLTF(r, manifest.PathNode)
				return err
			})
		})
	}

	if manifest.Soundtrack != "" {
		g.Go(func() error {
			return withFile(ctx, fsys, manifest.Soundtrack, func(r io.Reader) (err error) {
				bundle.Soundtrack, err = io.ReadAll(r)
				return err
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("[Assets] Loaded tuning, %d waypoints, %d bytes of soundtrack", len(bundle.Waypoints), len(bundle.Soundtrack))

	return bundle, nil

}

func withFile(ctx context.Context, fsys fs.FS, name string, read func(io.Reader) error) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	if err := read(f); err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}

	return nil

}
