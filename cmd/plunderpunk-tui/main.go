package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Scrimzay/plunderpunk/internal/board"
	"github.com/Scrimzay/plunderpunk/internal/config"
	"github.com/Scrimzay/plunderpunk/internal/profile"
	"github.com/Scrimzay/plunderpunk/internal/session"
	"github.com/Scrimzay/plunderpunk/pkg/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"
)

func main() {
	var (
		players   string
		seed      int64
		rulesPath string
		appName   string
		layout    string
	)
	flag.StringVar(&players, "players", "Captain", "Comma separated captain names, at most two")
	flag.Int64Var(&seed, "seed", 0, "Board seed, 0 for a random one")
	flag.StringVar(&rulesPath, "rules", os.Getenv("RULES_PATH"), "YAML rules file")
	flag.StringVar(&appName, "app", "plunderpunk", "Profile storage name, empty to skip profiles")
	flag.StringVar(&layout, "layout", board.LayoutClassic, "Board layout: classic or tall")
	flag.Parse()

	// the terminal belongs to the board
	logger.Discard()

	rules, err := config.LoadRules(rulesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
		os.Exit(1)
	}
	if rules, err = rules.WithLayout(layout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if seed == 0 {
		if seed, err = session.NewSeed(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	var names []string
	for _, name := range strings.Split(players, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	game, err := board.New(rules, seed, names)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}

	var profiles *profile.Store
	if appName != "" {
		manager, err := gdata.Open(gdata.Config{AppName: appName})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Profiles disabled: %v\n", err)
		} else {
			profiles = profile.NewStore(manager)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	v := newView(screen, game, profiles)
	defer screen.Fini()
	v.run()
}
