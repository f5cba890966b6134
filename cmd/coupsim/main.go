// Command coupsim plays seeded random games of Coup to completion, logging
// every transition and the final standing. Useful as a smoke test of the full
// engine contract and as a reference driver loop.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ivomac/coup/game"
)

func main() {
	_ = godotenv.Load()

	cfg, err := game.FromEnv()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logrus.SetLevel(cfg.Level())

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(int64(seed)))

	g, err := game.New(cfg.Rules(), seed, logrus.StandardLogger())
	if err != nil {
		logrus.Fatalf("new game: %v", err)
	}

	for i := 0; i < cfg.Games; i++ {
		if i > 0 {
			if err := g.Reset(seed + uint64(i)); err != nil {
				logrus.Fatalf("reset: %v", err)
			}
		}

		for !g.Over() {
			moves := g.LegalMoves()
			if len(moves) == 0 {
				logrus.Fatalf("no legal moves in %s", g.Phase().Kind())
			}
			if err := g.Step(moves[rng.Intn(len(moves))]); err != nil {
				logrus.Fatalf("step: %v", err)
			}
		}

		fmt.Println(g.Render())
		logrus.WithFields(logrus.Fields{
			"game":   g.ID,
			"turns":  g.Turn(),
			"winner": g.Winner(),
		}).Info("game finished")
	}
}
