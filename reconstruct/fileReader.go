package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"
)

const rootExtension = ".root"

func isInputFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), rootExtension)
}

// listInputFiles returns the ROOT files of a directory sorted by name.
func listInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isInputFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(files)
	return files, nil
}

func newDirectoryWatcher(dir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("Error creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("Error watching %s: %w", dir, err)
	}
	return watcher, nil
}

// watchDirectory processes every ROOT file written in dir until ctx is done.
func watchDirectory(ctx context.Context, dir string, settle time.Duration, proc *processor) error {
	watcher, err := newDirectoryWatcher(dir)
	if err != nil {
		return err
	}
	defer watcher.Close()

	logger.Info(fmt.Sprintf("Watching %s for new files", dir), "watcher")
	return watchInputs(ctx, watcher, settle, func(filename string) {
		if err := proc.processFile(filename, ""); err != nil {
			logger.Error(err.Error())
		}
	})
}

// pendingInput is a file still being written. Every write restarts its timer
// under a new generation, so a timer that already fired is ignored.
type pendingInput struct {
	timer      *time.Timer
	generation int
}

type settledInput struct {
	name       string
	generation int
}

// watchInputs calls handle once per ROOT file after it has seen no create or
// write event for the settle time. A file removed or renamed away before that
// is dropped.
func watchInputs(ctx context.Context, watcher *fsnotify.Watcher, settle time.Duration, handle func(string)) error {
	done := make(chan struct{})
	defer close(done)
	settled := make(chan settledInput)
	pending := make(map[string]*pendingInput)
	defer func() {
		for _, p := range pending {
			p.timer.Stop()
		}
	}()

	schedule := func(name string) {
		p, ok := pending[name]
		if !ok {
			p = &pendingInput{}
			pending[name] = p
		} else {
			p.timer.Stop()
		}
		p.generation++
		input := settledInput{name: name, generation: p.generation}
		p.timer = time.AfterFunc(settle, func() {
			select {
			case settled <- input:
			case <-done:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher", "watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isInputFile(event.Name) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				schedule(event.Name)
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				if p, ok := pending[event.Name]; ok {
					p.timer.Stop()
					delete(pending, event.Name)
				}
			}
		case input := <-settled:
			p, ok := pending[input.name]
			if !ok || p.generation != input.generation {
				continue
			}
			delete(pending, input.name)
			handle(input.name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error(fmt.Sprintf("watcher error: %v", err))
		}
	}
}
