// Command rank reads a JSON array of leaderboard rows on stdin, sorts it by
// creditsMinor (highest first, ties in input order), sets a 1-based rank on
// every row and writes the array to stdout.
package main

import (
	"io"
	"os"

	"github.com/baharkarakas/credits-leaderboard/internal/logger"
	"github.com/baharkarakas/credits-leaderboard/internal/services"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

func run(stdin io.Reader, stdout, stderr io.Writer) int {
	log := logger.New("cli", stderr)
	svc := services.NewLeaderboardService(nil, nil, log)
	if err := svc.Transform(stdin, stdout); err != nil {
		log.Error("rank failed", "err", err)
		return 1
	}
	return 0
}
