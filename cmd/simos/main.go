package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/simos"
	"github.com/viant/simos/model"
	"github.com/viant/simos/scenario"
	"github.com/viant/simos/service/dao/store"
	"gopkg.in/yaml.v3"
)

func main() {
	configURL := flag.String("config", "", "simulator config URL (yaml)")
	scenarioURL := flag.String("scenario", "", "scenario URL (yaml), built-in demo when empty")
	dumpURL := flag.String("dump", "", "write the final state as yaml to this URL")
	archiveURL := flag.String("archive", "", "store every final process record as json under this URL")
	verbose := flag.Bool("v", false, "log every transition to stderr")
	quiet := flag.Bool("q", false, "print only the final state")
	flag.Parse()

	if err := run(context.Background(), &settings{
		configURL:   *configURL,
		scenarioURL: *scenarioURL,
		dumpURL:     *dumpURL,
		archiveURL:  *archiveURL,
		verbose:     *verbose,
		quiet:       *quiet,
	}); err != nil {
		log.Fatal(err)
	}
}

type settings struct {
	configURL   string
	scenarioURL string
	dumpURL     string
	archiveURL  string
	verbose     bool
	quiet       bool
}

func run(ctx context.Context, settings *settings) error {
	scn, err := loadScenario(ctx, settings.scenarioURL)
	if err != nil {
		return err
	}
	var options []simos.Option
	if settings.configURL != "" {
		config, err := simos.LoadConfig(ctx, settings.configURL)
		if err != nil {
			return err
		}
		options = append(options, simos.WithConfig(config))
	}
	if settings.verbose {
		options = append(options, simos.WithLogger(log.New(os.Stderr, "simos ", log.LstdFlags)))
	}
	srv, err := scn.NewService(options...)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("failed to shutdown tracing: %v", err)
		}
	}()

	fmt.Printf("scenario %v: %d steps\n", scn.Name, len(scn.Steps))
	var observers []scenario.StepFunc
	if !settings.quiet {
		observers = append(observers, func(result *scenario.Result) {
			fmt.Printf("\n[%d] %v -> %v\n%v", result.Index, result.Call, result.OK, result.State)
		})
	}
	_, runErr := scn.Run(ctx, srv, observers...)

	state := srv.State(ctx)
	if settings.quiet {
		fmt.Print(state)
	}
	if settings.dumpURL != "" {
		if err := dump(ctx, settings.dumpURL, state); err != nil {
			return err
		}
	}
	if settings.archiveURL != "" {
		if err := archive(ctx, settings.archiveURL, state.Processes); err != nil {
			return err
		}
	}
	return runErr
}

func loadScenario(ctx context.Context, URL string) (*scenario.Scenario, error) {
	if URL == "" {
		return scenario.Parse([]byte(demoScenario))
	}
	return scenario.Load(ctx, URL)
}

func archive(ctx context.Context, URL string, processes []*model.Process) error {
	processStore, err := store.NewFsStore[model.PID, model.Process](ctx, URL, func(p *model.Process) model.PID { return p.PID })
	if err != nil {
		return err
	}
	for _, process := range processes {
		if err := processStore.Save(ctx, process); err != nil {
			return err
		}
	}
	return nil
}

func dump(ctx context.Context, URL string, state *simos.State) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	fs := afs.New()
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write state to %v: %w", URL, err)
	}
	return nil
}
