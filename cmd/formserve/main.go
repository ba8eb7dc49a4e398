// Command formserve serves the demo profile model over the form API:
// schema and document endpoints plus a WebSocket sync session per client.
// The document is persisted to disk on every change and reloaded when it
// is edited externally.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/document"
	"github.com/propform/propform/internal/demo"
	"github.com/propform/propform/internal/server"
	"github.com/propform/propform/remote"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	docPath := os.Getenv("PROFILE_DOC")
	if docPath == "" {
		docPath = "profile.yaml"
	}
	store := document.NewStore(docPath, demo.ProfileType)

	profile := loadOrCreate(store)

	// Persist on every model change. Edits coming back off our own save
	// are value-equal and do not re-trigger a change.
	attr.ChangedSignal(profile).Subscribe(func() {
		if err := store.Save(profile); err != nil {
			log.Printf("formserve: save: %v", err)
		}
	})

	models := remote.NewModelSet()
	models.Add("profile", demo.ProfileType, profile)
	model, _ := models.Get("profile")

	// External edits land under the model lock so a reload never
	// interleaves with connected sessions. Argument slots are restored
	// along with the attribute values.
	watcher, err := document.Watch(store, func(inst any, err error) {
		if err != nil {
			log.Printf("formserve: reload: %v", err)
			return
		}
		model.Sync(func() {
			attr.CopyState(demo.ProfileType, profile, inst)
		})
	})
	if err != nil {
		log.Fatalf("watching %s: %v", docPath, err)
	}
	defer watcher.Close()

	port := 8080
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	if err := server.Run(ctx, server.Config{Port: port, Models: models}); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}
}

// loadOrCreate reads the document if present, otherwise writes a fresh
// default profile so the watcher has a file to follow.
func loadOrCreate(store *document.Store) *demo.Profile {
	if _, err := os.Stat(store.Path); err == nil {
		inst, err := store.Load()
		if err != nil {
			log.Fatalf("loading %s: %v", store.Path, err)
		}
		if p, ok := inst.(*demo.Profile); ok {
			return p
		}
		log.Fatalf("loading %s: document is not a profile", store.Path)
	}
	p := demo.NewProfile()
	if err := store.Save(p); err != nil {
		log.Fatalf("creating %s: %v", store.Path, err)
	}
	log.Printf("formserve: created %s", store.Path)
	return p
}
