// cmd/sensorreader/main.go
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/modbus-sensor-reader/internal/config"
	"github.com/tamzrod/modbus-sensor-reader/internal/metrics"
	"github.com/tamzrod/modbus-sensor-reader/internal/poller"
	"github.com/tamzrod/modbus-sensor-reader/internal/publish"
	"github.com/tamzrod/modbus-sensor-reader/internal/status"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "path to configuration file")
		once    = flag.Bool("once", false, "read all sensors once, print JSON, exit")
	)
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if *cfgPath == "" {
		log.Fatal().Msg("usage: sensorreader -config <config.yaml> [-once]")
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("config validation failed")
	}
	config.Normalize(cfg)

	level, _ := zerolog.ParseLevel(cfg.Logging.Level)
	log = log.Level(level)

	// --------------------
	// Metrics (optional)
	// --------------------

	var collector metrics.Collector = metrics.Nop{}
	if cfg.Metrics != nil && cfg.Metrics.Addr != "" {
		prom := metrics.NewProm()
		collector = prom

		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", prom.Handler())
			log.Info().Str("addr", cfg.Metrics.Addr).Msg("serving metrics")
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	// --------------------
	// Build the pipeline
	// --------------------

	p, closeClient, err := poller.Build(cfg, log, collector)
	if err != nil {
		log.Fatal().Err(err).Msg("build failed")
	}
	defer closeClient()

	if *once {
		runOnce(p, log)
		return
	}

	runDaemon(cfg, p, collector, log)
}

func runOnce(p *poller.Poller, log zerolog.Logger) {
	res := p.PollOnce()
	if res.Err != nil {
		log.Fatal().Err(res.Err).Msg("read failed")
	}

	sink := publish.NewConsole(os.Stdout)
	if err := sink.Publish(res); err != nil {
		log.Fatal().Err(err).Msg("print failed")
	}
}

func runDaemon(cfg *config.Config, p *poller.Poller, collector metrics.Collector, log zerolog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Sinks
	// --------------------

	var sinks []publish.Sink

	if cfg.MQTT != nil {
		m, err := publish.NewMQTT(publish.MQTTConfig{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			Username:    cfg.MQTT.Username,
			Password:    cfg.MQTT.Password,
			Topic:       cfg.MQTT.Topic,
			StatusTopic: cfg.MQTT.StatusTopic,
			QoS:         cfg.MQTT.QoS,
			KeepAlive:   time.Duration(cfg.MQTT.KeepAliveS) * time.Second,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt sink failed")
		}
		defer m.Close()
		sinks = append(sinks, m)
	} else {
		sinks = append(sinks, publish.NewConsole(os.Stdout))
	}

	// --------------------
	// Poll loop
	// --------------------

	out := make(chan poller.Result)
	go p.Run(ctx, out)

	var snap status.Snapshot

	log.Info().
		Str("device", cfg.Source.DeviceName).
		Int("interval_ms", cfg.Poll.IntervalMs).
		Msg("polling started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return

		case res := <-out:
			collector.ObserveCycle(res.Elapsed, res.Err)

			if res.Err != nil {
				log.Error().Err(res.Err).Msg("poll cycle failed")
			} else {
				for id, v := range res.Values {
					collector.SetSensorValue(id, gaugeValue(v))
				}
			}

			for _, sink := range sinks {
				err := sink.Publish(res)
				collector.ObservePublish(sinkName(sink), err)
				if err != nil {
					log.Error().Err(err).Msg("publish failed")
				}
			}

			if snap.Apply(res.At, res.Err) {
				collector.SetHealth(float64(snap.State))
				for _, sink := range sinks {
					if err := sink.PublishStatus(snap); err != nil {
						log.Error().Err(err).Msg("status publish failed")
					}
				}
			}
		}
	}
}

func gaugeValue(v any) float64 {
	switch t := v.(type) {
	case bool:
		if t {
			return 1
		}
		return 0
	case float64:
		return t
	}
	return 0
}

func sinkName(s publish.Sink) string {
	if _, ok := s.(*publish.MQTT); ok {
		return "mqtt"
	}
	return "console"
}
