package server

import (
	"context"
	"testing"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/assert"

	"github.com/openkcm/selfservice-datamanager/internal/config"
)

func TestStartGRPCServer_ContextCancellation(t *testing.T) {
	t.Run("gracefully shuts down when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())

		cfg := &config.Config{
			GRPC: config.GRPCServer{
				GRPCServer: commoncfg.GRPCServer{
					Address: "localhost:0",
				},
				ShutdownTimeout: 1 * time.Second,
			},
		}

		errChan := make(chan error, 1)
		go func() {
			errChan <- StartGRPCServer(ctx, cfg)
		}()

		time.Sleep(100 * time.Millisecond)

		cancel()

		select {
		case err := <-errChan:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Server did not shut down within timeout")
		}
	})
}
