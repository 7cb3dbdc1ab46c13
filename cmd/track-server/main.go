// Command track-server streams private racing sessions to websocket clients.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/core"
	"github.com/lixenwraith/vi-racer/logging"
	"github.com/lixenwraith/vi-racer/network"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	configPath := flag.String("config", "", "Path to a TOML config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	maxPeers := flag.Int("max-peers", 0, "Maximum concurrent clients (0 keeps the default)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	level := logging.ParseLevel(cfg.Log.Level)
	if cfg.Log.Debug {
		level = logging.LevelDebug
	}
	log := logging.Std(level)

	netCfg := network.DefaultConfig()
	if cfg.Network.Address != "" {
		netCfg.Address = cfg.Network.Address
	}
	if cfg.Network.TickRate > 0 {
		netCfg.TickRate = cfg.Network.TickRate
	}
	if *addr != "" {
		netCfg.Address = *addr
	}
	if *maxPeers > 0 {
		netCfg.MaxPeers = *maxPeers
	}

	srv := network.NewServer(netCfg, cfg, log)
	if err := srv.Start(); err != nil {
		log.Errorf("start: %v", err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Infof("shutting down with %d peers", srv.PeerCount())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Warnf("stop: %v", err)
	}
}
