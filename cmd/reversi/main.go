package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jaminalder/codex-reversi/internal/app"
	"github.com/jaminalder/codex-reversi/internal/config"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "path to a JSON config file (default: XDG config dir)")
		shape    = flag.String("shape", "", "board shape: hex or square")
		size     = flag.Int("size", 0, "hexagon side length or square width")
		black    = flag.String("black", "", "black seat: easy, medium or hard")
		white    = flag.String("white", "", "white seat: easy, medium or hard")
		workers  = flag.Int("workers", 0, "goroutines used to score candidate moves")
		logLevel = flag.String("log-level", "", "zerolog level: debug, info, warn, error")
	)
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shape":
			cfg.Board.Shape = *shape
		case "size":
			cfg.Board.Size = *size
		case "black":
			cfg.Black = *black
		case "white":
			cfg.White = *white
		case "workers":
			cfg.Workers = *workers
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	if cfg.Black == app.Human || cfg.White == app.Human {
		log.Fatal().Msg("interactive play is not supported; both seats need a strategy")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	mc, err := cfg.Match()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := app.NewService(app.WithLogger(log.Logger))
	st, err := svc.CreateMatch(mc)
	if err != nil {
		log.Fatal().Err(err).Msg("create match")
	}
	final, err := svc.Run(ctx, st.ID)
	if errors.Is(err, context.Canceled) {
		log.Warn().Msg("interrupted")
	} else if err != nil {
		log.Fatal().Err(err).Msg("run match")
	}
	if final == nil {
		return
	}

	fmt.Printf("black %d  white %d  moves %d\n", final.Black, final.White, final.Moves)
	switch {
	case !final.Over():
		fmt.Println("match unfinished")
	case final.Winner == 0:
		fmt.Println("draw")
	default:
		fmt.Printf("%s wins\n", final.Winner)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.InitConfig()
	}
	return config.Load(path)
}
