package main

import (
	"flag"

	"github.com/dustin/go-humanize"
	"github.com/quarkos-dev/quark"
	"github.com/quarkos-dev/quark/config"
	"github.com/quarkos-dev/quark/internal/util"
	"github.com/quarkos-dev/quark/kernel"
	"github.com/quarkos-dev/quark/modules"
	"github.com/quarkos-dev/quark/vfs"
	"github.com/rs/zerolog"
)

// maxDumpDepth bounds the namespace dump so a mount cycle cannot recurse
// forever.
const maxDumpDepth = 16

func main() {
	// Parse command line arguments
	var (
		configPath string
		envPath    string
		verbose    int
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (yaml or json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&envPath, "env", "", "Path to dotenv-style override file")
	flag.StringVar(&envPath, "e", "", "--env (shorthand)")
	flag.IntVar(&verbose, "verbose", 0, "Log verbosity level between 1 (error) and 5 (trace). 0 uses the config's level.")
	flag.IntVar(&verbose, "v", 0, "--verbose (shorthand)")
	flag.Parse()

	// Load config before the logger so the config's level can apply
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		loaded, err := config.NewFromFile(configPath)
		if err != nil {
			util.InitializeLogger(util.ErrorLevel)
			logger := util.GetLogger("main")
			logger.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config file")
		}
		cfg = loaded
	}
	if envPath != "" {
		if err := cfg.ApplyEnvFiles(envPath); err != nil {
			util.InitializeLogger(util.ErrorLevel)
			logger := util.GetLogger("main")
			logger.Fatal().Err(err).Str("env", envPath).Msg("Failed to apply env file")
		}
	}
	if verbose > 0 {
		if verbose > 5 {
			verbose = 5
		}
		logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
		cfg.LogLvl = logLvls[verbose-1]
	}
	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")
	logger.Info().
		Int("namespaces", len(cfg.Namespaces)).
		Int("mounts", len(cfg.Mounts)).
		Msg("quarkd initializing")

	// Compose the kernel from the built-in managers
	layouts := make(map[string][]quark.NodeDef, len(cfg.Namespaces))
	for _, ns := range cfg.Namespaces {
		layouts[ns.Name] = ns.Nodes
	}
	mounts := make([]modules.Mount, 0, len(cfg.Mounts))
	for _, m := range cfg.Mounts {
		mounts = append(mounts, modules.Mount{From: m.From, At: m.At, Target: m.Target})
	}

	k, err := kernel.New(modules.Builtins(layouts, mounts)...)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to compose kernel")
	}
	if err := k.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start kernel")
	}

	// Dump every namespace so the boot result is visible
	api, err := kernel.API[*modules.NamespaceAPI](k, modules.NamespaceManagerName)
	if err != nil {
		logger.Fatal().Err(err).Msg("Namespace manager API unavailable")
	}
	for _, ns := range cfg.Namespaces {
		fs, err := api.Namespace(ns.Name)
		if err != nil {
			logger.Error().Err(err).Str("namespace", ns.Name).Msg("Namespace missing after start")
			continue
		}
		nsLogger := logger.With().Str("namespace", ns.Name).Logger()
		if root := fs.Root(); root != nil {
			if dir, ok := root.Node().(vfs.DirNode); ok {
				dumpDir(nsLogger, dir, "/", 0)
			}
		}
	}
}

// dumpDir logs a directory listing recursively with humanized file sizes.
func dumpDir(logger zerolog.Logger, dir vfs.DirNode, prefix string, depth int) {
	if depth > maxDumpDepth {
		logger.Warn().Str("path", prefix).Msg("Dump depth exceeded; possible mount cycle")
		return
	}
	for _, e := range dir.Entries() {
		path := prefix + e.Name()
		switch n := e.Node().(type) {
		case *vfs.File:
			logger.Info().
				Str("path", path).
				Str("size", humanize.IBytes(uint64(n.Size()))).
				Int("refs", n.Refs()).
				Msg("file")
		case vfs.DirNode:
			logger.Info().Str("path", path).Int("refs", n.Refs()).Msg("dir")
			dumpDir(logger, n, path+"/", depth+1)
		default:
			logger.Info().Str("path", path).Msg("node")
		}
	}
}
