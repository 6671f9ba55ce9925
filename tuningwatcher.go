package flightpath

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// TuningReload is one result of a TuningWatcher reloading its file: either a new, validated Tuning, or the error
// that stopped it from loading.
type TuningReload struct {
	Tuning *Tuning
	Err    error
}

// TuningWatcher watches a tuning file and reloads it whenever it's written. Reloads are handed back through a
// buffered channel, so the game loop can poll for them once a frame with Poll and never touches the Stage from
// another goroutine.
type TuningWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	reloads chan TuningReload
	done    chan struct{}
}

// NewTuningWatcher starts watching the tuning file at path. The file's directory is watched rather than the file
// itself, so editors that save by renaming a new file into place are picked up as well.
func NewTuningWatcher(path string) (*TuningWatcher, error) {

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("flightpath: watching %s: %w", path, err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("flightpath: watching %s: %w", path, err)
	}

	tw := &TuningWatcher{
		path:    abs,
		watcher: watcher,
		reloads: make(chan TuningReload, 1),
		done:    make(chan struct{}),
	}

	go tw.watch()

	return tw, nil

}

func (tw *TuningWatcher) watch() {

	defer close(tw.done)

	for {
		select {

		case event, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != tw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				tw.send(tw.load())
			}

		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
			tw.send(TuningReload{Err: err})

		}
	}

}

// send replaces any reload the game loop hasn't picked up yet; only the newest one matters.
func (tw *TuningWatcher) send(reload TuningReload) {
	select {
	case <-tw.reloads:
	default:
	}
	tw.reloads <- reload
}

func (tw *TuningWatcher) load() TuningReload {

	file, err := os.Open(tw.path)
	if err != nil {
		return TuningReload{Err: err}
	}
	defer file.Close()

	tuning, err := LoadTuning(file)
	return TuningReload{Tuning: tuning, Err: err}

}

// Path returns the absolute path of the watched file.
func (tw *TuningWatcher) Path() string {
	return tw.path
}

// Reloads returns the channel reloads are delivered on.
func (tw *TuningWatcher) Reloads() <-chan TuningReload {
	return tw.reloads
}

// Poll returns the pending reload, if there is one, without blocking.
func (tw *TuningWatcher) Poll() (TuningReload, bool) {
	select {
	case r := <-tw.reloads:
		return r, true
	default:
		return TuningReload{}, false
	}
}

// Close stops watching and waits for the watching goroutine to finish.
func (tw *TuningWatcher) Close() error {
	err := tw.watcher.Close()
	<-tw.done
	return err
}
