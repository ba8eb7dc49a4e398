package document

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a store's document when it changes on disk. The parent
// directory is watched rather than the file itself, since editors and the
// store's own atomic save replace the file by rename. Bursts of events are
// debounced into a single reload.
type Watcher struct {
	store    *Store
	onReload func(inst any, err error)
	fsw      *fsnotify.Watcher
	done     chan struct{}
}

const debounceDelay = 100 * time.Millisecond

// Watch starts watching the store's document. onReload is called from the
// watcher goroutine with the freshly deserialized instance, or with the
// load error when the document became unreadable.
func Watch(store *Store, onReload func(inst any, err error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(store.Path)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		store:    store,
		onReload: onReload,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	target := filepath.Clean(w.store.Path)
	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				debounce.Reset(debounceDelay)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			inst, err := w.store.Load()
			if err != nil {
				log.Printf("document: reload %s: %v", w.store.Path, err)
			}
			w.onReload(inst, err)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("document: watcher: %v", err)
		}
	}
}
