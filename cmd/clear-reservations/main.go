package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/storages"
)

func main() {
	var (
		reserver = flag.String("reserver", "", "only clear markers held by this character ID")
		guild    = flag.String("guild", "", "only clear the marker on this guild's storage")
		dryRun   = flag.Bool("dry-run", false, "report the marker without clearing it (needs -guild)")
	)
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{Name: "clear-reservations", Level: hclog.Info})
	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Error("failed to parse Redis URL", "error", err)
		os.Exit(1)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		logger.Error("failed to connect to Redis", "error", pingErr)
		os.Exit(1)
	}

	repo := storages.NewRedis(client)

	switch {
	case *guild != "":
		id := entities.NewStorageID(entities.StorageTypeGuild, *guild)
		holder, held, err := repo.FindReserved(ctx, id)
		if err != nil {
			logger.Error("failed to read marker", "storage", id.String(), "error", err)
			os.Exit(1)
		}
		if !held {
			fmt.Printf("%s is not reserved\n", id)
			return
		}
		fmt.Printf("%s is reserved by %s\n", id, holder)
		if *dryRun {
			return
		}
		err = repo.DeleteReserved(ctx, id)
	case *reserver != "":
		err = repo.DeleteReservedBy(ctx, *reserver)
	default:
		err = repo.DeleteAllReserved(ctx)
	}
	if err != nil {
		logger.Error("failed to clear reservations", "error", err)
		os.Exit(1)
	}
	logger.Info("storage reservations cleared", "reserver", *reserver, "guild", *guild)
}
