package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jusunglee/metro-go/pkg/metro"
)

func main() {
	var (
		networks = flag.String("network", "data/map.json", "Comma-separated network files or URLs")
		start    = flag.String("start", "", "Start station")
		end      = flag.String("end", "", "Destination station")
		line     = flag.String("line", "", "List the stations of a line")
	)
	flag.Parse()

	config := metro.DefaultConfig()
	config.Sources = strings.Split(*networks, ",")

	client, err := metro.NewLocal(context.Background(), config, nil)
	if err != nil {
		slog.Error("Failed to load network", "error", err)
		os.Exit(1)
	}

	// Line listing mode
	if *line != "" {
		stations, ok := client.LineStations()[*line]
		if !ok {
			slog.Error("Unknown line", "line", *line, "lines", client.Lines())
			os.Exit(1)
		}

		fmt.Printf("\nStations on line %s:\n", *line)
		for _, station := range stations {
			fmt.Printf("- %s\n", station)
		}
		return
	}

	if *start == "" || *end == "" {
		fmt.Println("Lines:")
		for _, name := range client.Lines() {
			fmt.Printf("- %s\n", name)
		}
		fmt.Println("\nUse -start and -end to find a route.")
		return
	}

	path, ok := client.FindPath(*start, *end)
	if !ok {
		fmt.Printf("No route from %s to %s\n", *start, *end)
		os.Exit(2)
	}

	fmt.Printf("\n%s -> %s: %g (%d transfers)\n", *start, *end, path.Len, path.Transfers())
	for _, seg := range path.Segments {
		fmt.Printf("\n%s towards %s (%g)\n", seg.Line, seg.Direction, seg.Len)
		fmt.Printf("  %s\n", strings.Join(seg.Stations, " - "))
	}
}
