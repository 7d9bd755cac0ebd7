package wallpaper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dixieflatline76/Backdrop/config"
	"github.com/dixieflatline76/Backdrop/util"
	"github.com/dixieflatline76/Backdrop/util/log"
	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
)

// reloadDebounce collapses the burst of events editors produce when saving.
const reloadDebounce = 500 * time.Millisecond

// RunFunc performs one acquisition pass with the given settings.
type RunFunc func(ctx context.Context, cfg *config.Config) error

// LoadFunc reads the settings file.
type LoadFunc func(path string) (*config.Config, error)

// Scheduler runs the pipeline on a cron schedule and reloads the settings file when it changes.
type Scheduler struct {
	settingsPath string
	load         LoadFunc
	run          RunFunc

	mu    sync.Mutex
	cfg   *config.Config
	cron  *cron.Cron
	jobID cron.EntryID

	running *util.SafeFlag
	runs    *util.SafeCounter
	ctx     context.Context
}

// NewScheduler creates a scheduler for cfg. settingsPath may be empty, in which case nothing is
// watched.
func NewScheduler(settingsPath string, cfg *config.Config, load LoadFunc, run RunFunc) *Scheduler {
	return &Scheduler{
		settingsPath: settingsPath,
		load:         load,
		run:          run,
		cfg:          cfg,
		cron:         cron.New(),
		running:      util.NewSafeBool(),
		runs:         util.NewSafeInt(),
		ctx:          context.Background(),
	}
}

// Start runs once immediately, then on schedule until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	err := s.schedule(s.cfg.Schedule)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	watcher, err := s.watch()
	if err != nil {
		log.Printf("Scheduler: not watching settings: %v", err)
	}
	if watcher != nil {
		defer watcher.Close()
		go s.processEvents(ctx, watcher)
	}

	s.cron.Start()
	log.Printf("Scheduler: started with schedule %q", s.Schedule())

	s.RunNow()

	<-ctx.Done()
	log.Print("Scheduler: stopping...")
	<-s.cron.Stop().Done()
	return nil
}

// RunNow runs one pass unless one is already in progress. It reports whether it ran.
func (s *Scheduler) RunNow() bool {
	if !s.running.CompareAndSwap(false, true) {
		log.Print("Scheduler: previous run still in progress, skipping.")
		return false
	}
	defer s.running.Set(false)

	s.mu.Lock()
	cfg, ctx := s.cfg, s.ctx
	s.mu.Unlock()

	n := s.runs.Increment()
	log.Printf("Scheduler: run #%d", n)
	if err := s.run(ctx, cfg); err != nil {
		log.Printf("Scheduler: run #%d failed: %v", n, err)
	}
	return true
}

// Runs returns how many passes have been started.
func (s *Scheduler) Runs() int {
	return s.runs.Value()
}

// Schedule returns the cron expression currently in effect.
func (s *Scheduler) Schedule() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Schedule
}

// Config returns the settings currently in effect.
func (s *Scheduler) Config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Reload re-reads the settings file. An invalid file is reported and the previous settings stay
// in effect.
func (s *Scheduler) Reload() error {
	cfg, err := s.load(s.settingsPath)
	if err != nil {
		return fmt.Errorf("reloading settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.Schedule != s.cfg.Schedule {
		if err := s.schedule(cfg.Schedule); err != nil {
			return err
		}
		log.Printf("Scheduler: schedule changed to %q", cfg.Schedule)
	}
	s.cfg = cfg
	log.Printf("Scheduler: settings reloaded from %s", s.settingsPath)
	return nil
}

// schedule replaces the cron entry. Callers hold s.mu.
func (s *Scheduler) schedule(spec string) error {
	id, err := s.cron.AddFunc(spec, func() { s.RunNow() })
	if err != nil {
		return fmt.Errorf("scheduling %q: %w", spec, err)
	}
	if s.jobID != 0 {
		s.cron.Remove(s.jobID)
	}
	s.jobID = id
	return nil
}

// watch watches the settings file's directory, since editors often replace the file on save.
func (s *Scheduler) watch() (*fsnotify.Watcher, error) {
	if s.settingsPath == "" {
		return nil, nil
	}
	dir := filepath.Dir(s.settingsPath)
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Printf("Scheduler: watching %s", s.settingsPath)
	return w, nil
}

func (s *Scheduler) processEvents(ctx context.Context, w *fsnotify.Watcher) {
	var debounce *time.Timer
	target := filepath.Clean(s.settingsPath)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(); err != nil {
					log.Printf("Scheduler: %v", err)
				}
			})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("Scheduler: watcher error: %v", err)
		}
	}
}
