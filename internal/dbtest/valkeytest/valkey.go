// Package valkeytest runs a throwaway Valkey container for repository and
// integration tests.
package valkeytest

import (
	"context"
	"net"

	"github.com/docker/go-connections/nat"
	"github.com/valkey-io/valkey-go"

	valkeycontainer "github.com/testcontainers/testcontainers-go/modules/valkey"
	slogctx "github.com/veqryn/slog-context"
)

const (
	Image = "valkey/valkey:8-alpine"
	port  = nat.Port("6379")
)

// Addr returns the address the mapped port is reachable on.
func Addr(mapped nat.Port) string {
	return net.JoinHostPort("localhost", mapped.Port())
}

// Start initialises a ValKey instance and returns a client, the mapped port,
// and a termination function. Any failure panics, there is nothing to test
// without the container.
func Start(ctx context.Context) (valkey.Client, nat.Port, func(ctx context.Context)) {
	container, err := valkeycontainer.Run(ctx, Image)
	must(ctx, err, "Failed to start ValKey container")

	mapped, err := container.MappedPort(ctx, port)
	must(ctx, err, "Failed to map a port for the ValKey container")

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{Addr(mapped)},
	})
	must(ctx, err, "Failed to initialise a ValKey client")

	terminate := func(ctx context.Context) {
		must(ctx, container.Terminate(ctx), "Failed to terminate ValKey container")
	}

	return client, mapped, terminate
}

func must(ctx context.Context, err error, msg string) {
	if err != nil {
		slogctx.Error(ctx, msg, "error", err)
		panic(err)
	}
}
