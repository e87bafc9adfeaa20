package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"massnet.org/hashlookup/config"
	"massnet.org/hashlookup/logging"
	"massnet.org/hashlookup/server"
	"massnet.org/hashlookup/version"
)

func hashlookupMain(cfg *config.Config) error {
	logging.Init(cfg.Log.LogDir, config.DefaultLoggingFilename, cfg.Log.LogLevel, 1, cfg.Log.DisableCPrint)

	// Show version at startup.
	logging.CPrint(logging.INFO, fmt.Sprintf("%s version %s", version.AppName, version.GetVersion()))
	logging.VPrint(logging.DEBUG, "loaded config", logging.LogFormat{"config": spew.Sdump(cfg)})

	srv, err := server.NewServer(cfg)
	if err != nil {
		logging.CPrint(logging.ERROR, "unable to create server", logging.LogFormat{"port": cfg.API.PortHttp, "err": err})
		return err
	}

	if err = srv.Start(); err != nil {
		logging.CPrint(logging.ERROR, "fail to start server", logging.LogFormat{"err": err})
		srv.Stop()
		return err
	}

	interruptCh := make(chan os.Signal, 2)
	signal.Notify(interruptCh, os.Interrupt, syscall.SIGTERM)
	sig := <-interruptCh

	logging.CPrint(logging.INFO, "stopping server", logging.LogFormat{"sig": sig})
	err = srv.Stop()
	logging.CPrint(logging.INFO, "Shutdown complete", logging.LogFormat{"err": err})
	return err
}

func main() {
	// Use all processor cores.
	runtime.GOMAXPROCS(runtime.NumCPU())

	filename := config.DefaultConfigFilename
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	cfg, err := config.LoadConfig(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err = config.CheckConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to check config: %v\n", err)
		os.Exit(1)
	}

	if err = hashlookupMain(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error in main process: %v\n", err)
		os.Exit(1)
	}
}
