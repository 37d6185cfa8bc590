// README: Interactive console; reads one query per line and prints the smart (or keyword) reply.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"atlas/internal/ai"
	"atlas/internal/config"
	"atlas/internal/geo"
	"atlas/internal/intent"
	"atlas/internal/logger"
	"atlas/internal/service"
)

type answerer interface {
	Handle(ctx context.Context, query string) string
}

type keywordAnswerer struct{ svc *service.QueryService }

func (k keywordAnswerer) Handle(ctx context.Context, query string) string {
	return k.svc.Answer(ctx, query)
}

func main() {
	keywordOnly := flag.Bool("keyword", false, "use the keyword parser instead of the model")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.NewStructured("warn", "console")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	httpClient := geo.NewHTTPClient(cfg.Geo.HTTPTimeout)
	geocoder := geo.NewNominatimGeocoder(cfg.Geo.NominatimURL, cfg.Geo.UserAgent, httpClient)
	weather := geo.NewWeatherService(geocoder, cfg.Geo.OpenMeteoURL, httpClient, log)
	route := geo.NewRouteService(geocoder, geo.NewOSRMRouter(cfg.Geo.OSRMURL, httpClient), log)

	var bot answerer
	if *keywordOnly {
		bot = keywordAnswerer{svc: service.NewQueryService(weather)}
	} else {
		provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, ai.ModelOptions{
			Name:        cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v (set GEMINI_API_KEY or use -keyword)\n", err)
			os.Exit(1)
		}
		defer provider.Close()
		bot = service.NewDispatcher(intent.NewExtractor(provider.JSON()), provider, weather, route, log)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
		case "exit", "quit":
			return
		default:
			fmt.Println(bot.Handle(ctx, line))
		}
		if ctx.Err() != nil {
			return
		}
		fmt.Print("> ")
	}
}
