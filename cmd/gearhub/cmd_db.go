package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spokeworks/gearhub/config"
	"github.com/spokeworks/gearhub/database/seeders"
	"github.com/spokeworks/gearhub/pkg/store"
)

// gearhub db:ping: verify the store connection and index setup.
var dbPingCmd = &cobra.Command{
	Use:   "db:ping",
	Short: "Verify the MongoDB connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := connectStore()
		if err != nil {
			return err
		}
		defer disconnect(st)

		fmt.Printf("OK: %s / %s\n", config.MongoURI(), config.MongoDatabase())
		return nil
	},
}

// gearhub seed: load the starter catalog into an empty parts collection.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the parts catalog with starter data",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := connectStore()
		if err != nil {
			return err
		}
		defer disconnect(st)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := seeders.SeedParts(ctx, st)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d parts.\n", n)
		return nil
	},
}

func connectStore() (*store.Store, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return store.Connect(context.Background(), config.MongoURI(), config.MongoDatabase())
}

func disconnect(st *store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = st.Disconnect(ctx)
}
