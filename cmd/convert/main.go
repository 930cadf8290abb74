package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/jusunglee/metro-go/internal/models"
	"github.com/jusunglee/metro-go/internal/network"
)

func main() {
	var (
		in      = flag.String("in", "linestation.json", "Input file")
		out     = flag.String("out", "data/map.json", "Output network file (.json or .pb)")
		from    = flag.String("from", "business", "Input kind: business (operator station listing) or network")
		hopCost = flag.Float64("hop-cost", 1, "Cost of each hop for business listings")
	)
	flag.Parse()

	f, err := os.Open(*in)
	if err != nil {
		slog.Error("Failed to open input", "file", *in, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	var lines []models.LineDescriptor
	switch *from {
	case "business":
		lines, err = network.ConvertBusinessObject(f, *hopCost)
	case "network":
		var data []byte
		if data, err = os.ReadFile(*in); err == nil {
			lines, err = network.Decode(data, network.FormatOf(*in))
		}
	default:
		slog.Error("Unknown input kind", "from", *from)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Failed to read input", "file", *in, "error", err)
		os.Exit(1)
	}

	w, err := os.Create(*out)
	if err != nil {
		slog.Error("Failed to create output", "file", *out, "error", err)
		os.Exit(1)
	}
	if err := network.Encode(w, lines, network.FormatOf(*out)); err != nil {
		w.Close()
		slog.Error("Failed to write network", "file", *out, "error", err)
		os.Exit(1)
	}
	if err := w.Close(); err != nil {
		slog.Error("Failed to write network", "file", *out, "error", err)
		os.Exit(1)
	}

	slog.Info("Network written", "file", *out, "lines", len(lines))
}
