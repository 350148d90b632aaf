package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/pkg/errors"

	"github.com/vedantwpatil/Mouse-Distance/internal/config"
	"github.com/vedantwpatil/Mouse-Distance/internal/display"
	"github.com/vedantwpatil/Mouse-Distance/internal/monitoring"
	"github.com/vedantwpatil/Mouse-Distance/internal/storage"
	"github.com/vedantwpatil/Mouse-Distance/internal/tracker"
	"github.com/vedantwpatil/Mouse-Distance/internal/tracking"
)

type Application struct {
	config  config.Config
	store   storage.Store
	tracker *tracker.Tracker
	status  *display.StatusLine
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan error
	in      *bufio.Reader
	out     io.Writer

	stopOnce sync.Once
	stopErr  error
}

func NewApplication(cfg config.Config, quiet bool) (*Application, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan error, 1),
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	if !quiet {
		app.status = display.NewStatusLine("Distance traveled:", cfg.Tracking.DistanceUnit)
		app.config.Tracking.OnDistanceChanged = app.status.Report
		monitoring.SetLogger(app.status.Logf)
	}

	app.store = openStore(cfg.Storage.Path)

	t, err := tracker.New(app.config, app.store)
	if err != nil {
		app.store.Close()
		cancel()
		return nil, err
	}
	app.tracker = t
	return app, nil
}

// openStore falls back to an in-memory store when the database cannot be
// opened, so tracking still works without persistence.
func openStore(path string) storage.Store {
	if path == "" {
		return storage.NewMemoryStore()
	}
	s, err := storage.OpenSQLite(path)
	if err != nil {
		monitoring.Logf("Unable to open store at %s, distance will only be kept in memory: %v", path, err)
		return storage.NewMemoryStore()
	}
	return s
}

func (app *Application) newSource() tracking.Source {
	switch app.config.Source.Kind {
	case config.SourcePoll:
		return tracking.NewPollSource(app.config.Source.PollInterval)
	default:
		return tracking.NewHookSource()
	}
}

func (app *Application) Run() error {
	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go app.handleSignals(sigChan)

	fmt.Printf("Tracking pointer movement with the %s source (tracker %s)\n", app.config.Source.Kind, app.tracker.ID())
	go func() {
		app.done <- app.tracker.Run(app.ctx, app.newSource())
	}()

	// Main application loop
	for {
		exit, err := app.showMenu()
		if err != nil || exit {
			return err
		}
	}
}

func (app *Application) showMenu() (bool, error) {
	fmt.Fprintln(app.out, "\nCommands:")
	fmt.Fprintln(app.out, "1. Show distance traveled")
	fmt.Fprintln(app.out, "2. Clear distance traveled")
	fmt.Fprintln(app.out, "3. Exit")
	fmt.Fprint(app.out, "Choose an option: ")

	// Read the whole line so bad input is rejected once, not per token.
	line, err := app.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return true, errors.Wrap(err, "failed to read menu choice")
	}
	if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
		// stdin is closed; nobody is left to choose Exit.
		fmt.Fprintln(app.out, "\nInput closed, exiting...")
		return true, app.cleanup()
	}

	choice, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		fmt.Fprintln(app.out, "Invalid option")
		return false, nil
	}

	switch choice {
	case 1:
		return false, app.showDistance()
	case 2:
		app.tracker.ClearDistanceTraveled()
		if app.status != nil {
			if err := app.status.Redraw(0, 0); err != nil {
				return false, err
			}
			fmt.Fprintln(app.out)
		}
		fmt.Fprintln(app.out, "Distance cleared")
		return false, nil
	case 3:
		return true, app.cleanup()
	default:
		fmt.Fprintln(app.out, "Invalid option")
		return false, nil
	}
}

func (app *Application) showDistance() error {
	distance, err := app.tracker.DistanceTraveled()
	if err != nil {
		return err
	}
	remembered := ""
	if app.tracker.Remembering() {
		remembered = " (remembered across sessions)"
	}
	fmt.Fprintf(app.out, "Distance traveled: %.2f %s%s\n", distance, app.tracker.Unit(), remembered)
	return nil
}

func (app *Application) cleanup() error {
	app.stopOnce.Do(func() {
		app.cancel()
		err := <-app.done
		if app.status != nil {
			app.status.Flush()
		}
		if closeErr := app.store.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		app.stopErr = err
	})
	return app.stopErr
}

func (app *Application) handleSignals(sigChan chan os.Signal) {
	sig := <-sigChan
	fmt.Printf("\nReceived signal: %v\n", sig)
	fmt.Println("Exiting application...")
	if err := app.cleanup(); err != nil {
		log.Printf("Error stopping tracker: %v", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// loadConfig layers defaults, the optional config file and explicitly set flags.
func loadConfig(configPath string, flags *flag.FlagSet) (config.Config, error) {
	cfg := *config.NewConfig()

	if configPath != "" {
		o, unknown, err := config.LoadOverrides(configPath)
		if err != nil {
			return cfg, err
		}
		for _, key := range unknown {
			monitoring.Logf("Ignoring unrecognized config key %q in %s", key, configPath)
		}
		if cfg, err = cfg.Merge(*o); err != nil {
			return cfg, err
		}
	}

	var o config.Overrides
	var visitErr error
	flags.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "store":
			o.StorePath = &value
		case "unit":
			o.DistanceUnits = &value
		case "source":
			o.Source = &value
		case "poll-interval":
			o.PollInterval = &value
		case "remember":
			remember, err := strconv.ParseBool(value)
			if err != nil {
				visitErr = errors.Wrap(err, "invalid -remember")
				return
			}
			o.RememberUser = &remember
		}
	})
	if visitErr != nil {
		return cfg, visitErr
	}
	return cfg.Merge(o)
}

func main() {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := flags.String("config", "", "path to a JSON config file")
	flags.String("store", "mouse-tracker.db", "SQLite database for remembered distance (empty keeps it in memory)")
	flags.Bool("remember", false, "remember the distance traveled across sessions")
	flags.String("unit", "mm", "distance unit: mm or inch")
	flags.String("source", config.SourceHook, "pointer source: hook or poll")
	flags.String("poll-interval", tracking.DefaultPollInterval.String(), "sampling interval for the poll source")
	quiet := flags.Bool("quiet", false, "do not draw the live distance line")
	flags.Parse(os.Args[1:])

	cfg, err := loadConfig(*configPath, flags)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	app, err := NewApplication(cfg, *quiet)
	if err != nil {
		log.Fatalf("Unable to start tracker: %v", err)
	}
	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
