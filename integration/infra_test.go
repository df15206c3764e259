//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/goccy/go-yaml"
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/selfservice-datamanager/internal/config"
	"github.com/openkcm/selfservice-datamanager/internal/dbtest/postgrestest"
	"github.com/openkcm/selfservice-datamanager/internal/dbtest/valkeytest"
	"github.com/openkcm/selfservice-datamanager/internal/model"
	remotehttp "github.com/openkcm/selfservice-datamanager/internal/remote/http"
)

type closeFunc func(ctx context.Context)

type infraStat struct {
	PostgresPort   nat.Port
	ValKeyPort     nat.Port
	ConfigFilePath string
	Procdir        string
	Cfg            config.Config
	Bank           *fakeBank

	closeFuncs []closeFunc
}

func initInfra(t *testing.T, exeName string) (istat infraStat) {
	t.Helper()

	// Since the config is read from the file $PWD/config.yaml,
	// we're running a process in a subdirectory so that we aren't interferring with the other tests.
	wd, err := os.Getwd()
	require.NoError(t, err, "failed to get wd")
	istat.Procdir = filepath.Join(wd, exeName+"-test")
	istat.ConfigFilePath = filepath.Join(istat.Procdir, "config.yaml")

	// Prepare a directory for the test
	err = os.MkdirAll(istat.Procdir, fs.ModePerm)
	require.NoError(t, err, "failed to create a dir for the process")

	err = os.WriteFile(istat.ConfigFilePath, []byte(validConfig), fs.ModePerm)
	require.NoError(t, err, "failed to write config file")

	err = commoncfg.LoadConfig(&istat.Cfg, nil, istat.Procdir)
	require.NoError(t, err, "failed to load config")

	istat.Cfg.HTTP.Address = "unix://" + filepath.Join(istat.Procdir, exeName+".sock")
	fmt.Println("HTTP Address is: ", istat.Cfg.HTTP.Address)
	istat.Cfg.GRPC.Address = ":0"

	return istat
}

func (istat *infraStat) PreparePostgres(t *testing.T) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err, "getting wd")

	pgClient, pgPort, pgTerminate := postgrestest.Start(t.Context())
	pgClient.Close()

	istat.PostgresPort = pgPort
	istat.closeFuncs = append(istat.closeFuncs, pgTerminate)

	istat.Cfg.Database.Name = postgrestest.DBName
	istat.Cfg.Database.User = commoncfg.SourceRef{Source: "embedded", Value: postgrestest.DBUser}
	istat.Cfg.Database.Password = commoncfg.SourceRef{Source: "embedded", Value: postgrestest.DBPassword}
	istat.Cfg.Database.Host = commoncfg.SourceRef{Source: "embedded", Value: postgrestest.DBHost}
	istat.Cfg.Database.Port = pgPort.Port()
	istat.Cfg.Database.SSLMode = postgrestest.DBSSLMode
	istat.Cfg.Migrate.Source = "file://" + filepath.Join(wd, "../sql")
	istat.Cfg.Cache.Backend = config.CacheBackendPostgres
}

func (istat *infraStat) PrepareValKey(t *testing.T) {
	t.Helper()

	vkClient, vkPort, vkTerminate := valkeytest.Start(t.Context())
	vkClient.Close()

	istat.ValKeyPort = vkPort
	istat.closeFuncs = append(istat.closeFuncs, vkTerminate)

	istat.Cfg.ValKey.Host = commoncfg.SourceRef{Source: "embedded", Value: istat.ValKeyAddress()}
	istat.Cfg.ValKey.User = commoncfg.SourceRef{Source: "embedded", Value: ""}
	istat.Cfg.ValKey.Password = commoncfg.SourceRef{Source: "embedded", Value: ""}
	istat.Cfg.Cache.Backend = config.CacheBackendValKey
}

func (istat *infraStat) ValKeyAddress() string {
	return valkeytest.Addr(istat.ValKeyPort)
}

// PrepareBank starts a fake remote banking API and points the remote client at it.
func (istat *infraStat) PrepareBank(t *testing.T) {
	t.Helper()

	istat.Bank = newFakeBank()
	istat.closeFuncs = append(istat.closeFuncs, func(context.Context) { istat.Bank.Close() })

	istat.Cfg.Remote.BaseURL = istat.Bank.URL + "/fineract-provider/api/v1"
	istat.Cfg.Remote.TenantID = "default"
	istat.Cfg.Remote.ClientAuth = config.ClientAuth{Type: config.ClientAuthInsecure}
}

// PrepareConfig writes a config file for running the test into the ConfigFilePath.
func (istat *infraStat) PrepareConfig(t *testing.T) {
	t.Helper()

	configFile, err := os.Create(istat.ConfigFilePath)
	require.NoError(t, err, "failed to create config file")
	defer configFile.Close()

	err = yaml.NewEncoder(configFile).Encode(istat.Cfg)
	require.NoError(t, err, "failed to write config")
}

// StartProcess runs the binary with the given subcommand inside Procdir and
// returns a function stopping it gracefully so that coverprofiles are written.
func (istat *infraStat) StartProcess(t *testing.T, subcommand string) func() {
	t.Helper()

	currdir, err := os.Getwd()
	require.NoError(t, err, "failed to get wd")

	cmd := exec.CommandContext(t.Context(), filepath.Join(currdir, binaryName), subcommand)
	cmd.Dir = istat.Procdir

	cmdOutPath := filepath.Join(currdir, subcommand+"-"+filepath.Base(istat.Procdir)+".log")
	cmdOut, err := os.Create(cmdOutPath)
	require.NoError(t, err, "failed to create a log file")

	cmd.Stdout = cmdOut
	cmd.Stderr = cmdOut
	t.Logf("starting an app process. Logs will be saved into %s", cmdOutPath)

	require.NoError(t, cmd.Start(), "could not start command")

	return func() {
		_ = syscall.Kill(cmd.Process.Pid, syscall.SIGTERM)
		_ = cmd.Wait()
		cmdOut.Close()
	}
}

func (istat *infraStat) Close(ctx context.Context) {
	os.Remove(istat.ConfigFilePath)
	os.RemoveAll(istat.Procdir)

	for _, close := range istat.closeFuncs {
		close(ctx)
	}
}

const (
	bankClientID = 42
	bankAuthKey  = "dXNlcjpwYXNzd29yZA=="
)

var bankCharges = []model.Charge{
	{ID: 1, ClientID: bankClientID, ChargeID: 7, Name: "Annual fee", Amount: 25, AmountOutstanding: 25, Active: true},
	{ID: 2, ClientID: bankClientID, ChargeID: 8, Name: "SMS fee", Amount: 1.5, AmountPaid: 1.5, Active: true, Paid: true},
}

// fakeBank serves the self service endpoints the tests go through.
type fakeBank struct {
	*httptest.Server
}

func newFakeBank() *fakeBank {
	mux := http.NewServeMux()
	const base = "/fineract-provider/api/v1/self"

	mux.HandleFunc("POST "+base+"/authentication", func(w http.ResponseWriter, r *http.Request) {
		var payload model.LoginPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Password != "password" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		writeBankJSON(w, model.User{UserID: 1, Username: payload.Username, AuthKey: bankAuthKey, Authenticated: true})
	})

	mux.HandleFunc("GET "+base+"/clients", func(w http.ResponseWriter, r *http.Request) {
		if !authorised(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		writeBankJSON(w, model.NewPage([]model.Client{{ID: bankClientID, DisplayName: "Jane Doe"}}))
	})

	mux.HandleFunc("GET "+base+"/clients/{id}/charges", func(w http.ResponseWriter, r *http.Request) {
		if !authorised(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if r.PathValue("id") != "42" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		writeBankJSON(w, model.NewPage(bankCharges))
	})

	return &fakeBank{Server: httptest.NewServer(mux)}
}

func authorised(r *http.Request) bool {
	return r.Header.Get(remotehttp.HeaderAuthorization) == "Basic "+bankAuthKey &&
		r.Header.Get(remotehttp.HeaderTenantID) != ""
}

func writeBankJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
