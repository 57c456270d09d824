package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Prunes index entries for NPC instances whose value key has expired or been
// deleted out of band. The registry tolerates stale index entries at read
// time; this keeps the sets from growing without bound on long-lived
// deployments.
func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	ids, err := client.SMembers(ctx, "npc:instances").Result()
	if err != nil {
		log.Fatal("Failed to read instance index:", err)
	}

	fmt.Printf("Checking %d indexed instances...\n", len(ids))

	var stale []string
	for _, id := range ids {
		exists, err := client.Exists(ctx, "npc:instance:"+id).Result()
		if err != nil {
			log.Fatal("Failed to check instance:", err)
		}
		if exists == 0 {
			stale = append(stale, id)
		}
	}

	if len(stale) == 0 {
		fmt.Println("No stale entries found")
		return
	}

	for _, id := range stale {
		fmt.Printf("Pruning stale entry %s\n", id)
		if err := client.SRem(ctx, "npc:instances", id).Err(); err != nil {
			log.Fatal("Failed to prune index entry:", err)
		}
	}

	// Template sets can also hold ids whose instance is gone
	templateKeys, err := client.Keys(ctx, "npc:template:*").Result()
	if err != nil {
		log.Fatal("Failed to list template sets:", err)
	}

	for _, key := range templateKeys {
		members, err := client.SMembers(ctx, key).Result()
		if err != nil {
			log.Fatal("Failed to read template set:", err)
		}
		for _, id := range members {
			exists, err := client.Exists(ctx, "npc:instance:"+id).Result()
			if err != nil {
				log.Fatal("Failed to check instance:", err)
			}
			if exists == 0 {
				fmt.Printf("Pruning %s from %s\n", id, key)
				if err := client.SRem(ctx, key, id).Err(); err != nil {
					log.Fatal("Failed to prune template entry:", err)
				}
			}
		}
	}

	fmt.Printf("Pruned %d stale instances\n", len(stale))
}
