// Package watch monitors a dictation inbox directory and reports
// finished clips as they arrive. Recorders write clips elsewhere and
// move them into the inbox when complete, so a create or rename event
// means the file is safe to read.
package watch

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// clipExtensions are the formats the decoder understands.
var clipExtensions = map[string]bool{
	".wav": true,
	".mp3": true,
	".ogg": true,
	".oga": true,
}

// IsClip reports whether the path looks like a dictation clip.
func IsClip(path string) bool {
	return clipExtensions[strings.ToLower(filepath.Ext(path))]
}

// Watcher reports new clips appearing in an inbox directory.
type Watcher struct {
	fs    *fsnotify.Watcher
	clips chan string
	done  chan struct{}
	log   zerolog.Logger
}

// New starts watching dir. Clip paths arrive on Clips() until Close.
func New(dir string, log zerolog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{
		fs:    fs,
		clips: make(chan string, 8),
		done:  make(chan struct{}),
		log:   log.With().Str("component", "watch").Str("dir", dir).Logger(),
	}
	go w.run()
	return w, nil
}

// Clips returns the channel of newly arrived clip paths. It is closed
// when the watcher shuts down.
func (w *Watcher) Clips() <-chan string {
	return w.clips
}

// Close stops the watcher and closes the clips channel.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.clips)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// Moves into the directory surface as Create.
			if !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !IsClip(event.Name) {
				continue
			}
			w.log.Debug().Str("clip", event.Name).Msg("clip arrived")
			select {
			case w.clips <- event.Name:
			default:
				w.log.Warn().Str("clip", event.Name).Msg("dropping clip event, queue full")
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}
