//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/openkcm/selfservice-datamanager/internal/business/server"
	"github.com/openkcm/selfservice-datamanager/internal/model"
)

func TestDataManager(t *testing.T) {
	const cmdName = "api-server"

	tests := []struct {
		name    string
		prepare func(istat *infraStat, t *testing.T)
	}{
		{
			name:    "valkey backend",
			prepare: (*infraStat).PrepareValKey,
		},
		{
			name:    "postgres backend",
			prepare: (*infraStat).PreparePostgres,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()

			istat := initInfra(t, cmdName)
			defer istat.Close(context.WithoutCancel(ctx))

			tt.prepare(&istat, t)
			istat.PrepareBank(t)
			istat.Cfg.GRPC.Address = "localhost:19091"
			istat.PrepareConfig(t)

			stop := istat.StartProcess(t, cmdName)
			defer stop()

			client := unixClient(strings.TrimPrefix(istat.Cfg.HTTP.Address, "unix://"))

			require.Eventually(t, func() bool {
				resp, err := client.Get("http://datamanager/ping")
				if err != nil {
					return false
				}
				resp.Body.Close()

				return resp.StatusCode == http.StatusOK
			}, 10*time.Second, 100*time.Millisecond, "api server did not come up")

			t.Run("rejects session scoped calls before sign in", func(t *testing.T) {
				resp, err := client.Get("http://datamanager/v1/client/charges")
				require.NoError(t, err)
				defer resp.Body.Close()

				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("rejects wrong credentials", func(t *testing.T) {
				resp := postJSON(t, client, "http://datamanager/v1/session", model.LoginPayload{Username: "mifos", Password: "wrong"})
				defer resp.Body.Close()

				assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
			})

			t.Run("signs in", func(t *testing.T) {
				resp := postJSON(t, client, "http://datamanager/v1/session", model.LoginPayload{Username: "mifos", Password: "password"})
				defer resp.Body.Close()

				require.Equal(t, http.StatusOK, resp.StatusCode)

				var user model.User
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
				assert.Equal(t, bankAuthKey, user.AuthKey)
			})

			t.Run("syncs the client charges", func(t *testing.T) {
				page := getCharges(t, client, "http://datamanager/v1/clients/42/charges")
				assert.Equal(t, bankCharges, page.PageItems)
			})

			t.Run("serves the synced charges locally", func(t *testing.T) {
				page := getCharges(t, client, "http://datamanager/v1/client/charges")
				assert.Equal(t, bankCharges, page.PageItems)
				assert.Equal(t, len(bankCharges), page.TotalFilteredRecords)
			})

			t.Run("reports gRPC health", func(t *testing.T) {
				conn, err := grpc.NewClient(istat.Cfg.GRPC.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
				require.NoError(t, err)
				defer conn.Close()

				resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: server.HealthServiceName})
				require.NoError(t, err)
				assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
			})

			t.Run("signs out", func(t *testing.T) {
				req, err := http.NewRequestWithContext(ctx, http.MethodDelete, "http://datamanager/v1/session", nil)
				require.NoError(t, err)

				resp, err := client.Do(req)
				require.NoError(t, err)
				resp.Body.Close()
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)

				resp, err = client.Get("http://datamanager/v1/client/charges")
				require.NoError(t, err)
				resp.Body.Close()
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})
		})
	}
}

func unixClient(socket string) *http.Client {
	return &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				return new(net.Dialer).DialContext(ctx, "unix", socket)
			},
		},
	}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)

	return resp
}

func getCharges(t *testing.T, client *http.Client, url string) model.Page[model.Charge] {
	t.Helper()

	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page model.Page[model.Charge]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))

	return page
}
