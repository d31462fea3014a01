package main

import (
	"context"
	"fmt"
	"log"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/TanaroSch/xkeybind/internal/app"
	"github.com/TanaroSch/xkeybind/internal/command"
	"github.com/TanaroSch/xkeybind/internal/config"
)

const version = "v0.3.0"

func main() {
	defaultPath, err := config.DefaultPath()
	if err != nil {
		defaultPath = "config.toml"
	}
	if env, ok := os.LookupEnv("XKEYBIND_CONFIG"); ok {
		defaultPath = env
	}

	f := flag.NewFlagSet("xkeybind", flag.ExitOnError)
	configPath := f.StringP("config", "c", defaultPath, "config file location")
	backend := f.String("backend", "", `grab backend, "x11" or "legacy" (overrides the config file)`)
	debug := f.BoolP("debug", "d", false, "trace grab and keymask decisions")
	check := f.Bool("check", false, "load the config, print the resulting bindings and exit")
	listKeysyms := f.Bool("list-keysyms", false, "print known keysym names starting with the optional argument and exit")
	complete := f.Bool("complete", false, "print completions for <command> <needle> and exit")
	showVersion := f.Bool("version", false, "print the version and exit")
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: xkeybind [flags]\n\n")
		f.PrintDefaults()
	}
	f.Parse(os.Args[1:])

	switch {
	case *showVersion:
		fmt.Println("xkeybind", version)
		return
	case *listKeysyms:
		fmt.Print(app.ListKeysyms(f.Arg(0)))
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *backend != "" {
		cfg.Backend = *backend
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Error: %v", err)
		}
	}
	if *debug {
		cfg.Debug = true
	}

	switch {
	case *complete:
		for _, candidate := range app.Complete(cfg, f.Arg(0), f.Arg(1)) {
			fmt.Println(candidate)
		}
		return
	case *check:
		out, err := app.Check(cfg)
		fmt.Print(out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(command.ExitCode(err))
		}
		return
	}

	log.Printf("xkeybind %s starting...", version)
	application, err := app.New(cfg, version)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if err := application.Run(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
