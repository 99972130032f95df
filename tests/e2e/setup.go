//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"ntzs-issuer/cmd/bootstrap"
	"ntzs-issuer/cmd/bootstrap/components"
	"ntzs-issuer/internal/infra/chain"
	"ntzs-issuer/internal/infra/db"
	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/usecase/commands"
	"ntzs-issuer/internal/usecase/queries"
	"ntzs-issuer/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// ------------------------------------------------------------
// Fake collaborators for the chain and the payment provider.
// The pipeline's own state machine runs against a real database;
// only the external boundaries are stubbed.
// ------------------------------------------------------------

// FakeGateway stands in for the mobile money provider.
type FakeGateway struct {
	mu        sync.Mutex
	initiated []string
	statuses  map[string]*commands.PaymentOrderSnapshot
	FailInit  bool
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{statuses: make(map[string]*commands.PaymentOrderSnapshot)}
}

func (g *FakeGateway) InitiatePayment(_ context.Context, orderID, _ string, _ int64, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailInit {
		return fmt.Errorf("provider rejected payment request")
	}
	g.initiated = append(g.initiated, orderID)
	return nil
}

func (g *FakeGateway) CheckOrderStatus(_ context.Context, orderID string) (*commands.PaymentOrderSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, ok := g.statuses[orderID]
	if !ok {
		return &commands.PaymentOrderSnapshot{OrderID: orderID, Completed: false}, nil
	}
	return snap, nil
}

func (g *FakeGateway) SetCompleted(orderID, reference string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses[orderID] = &commands.PaymentOrderSnapshot{
		OrderID:   orderID,
		Completed: true,
		Reference: reference,
	}
}

func (g *FakeGateway) InitiatedOrders() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.initiated...)
}

// FakeExecutor stands in for the EVM minter wallet.
type FakeExecutor struct {
	mu       sync.Mutex
	minted   []string
	seq      int
	waitHook func(ctx context.Context) error
	FailMint bool
}

func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{}
}

func (e *FakeExecutor) Mint(_ context.Context, wallet string, _ int64) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.FailMint {
		return "", fmt.Errorf("rpc unavailable")
	}
	e.seq++
	e.minted = append(e.minted, wallet)
	return fmt.Sprintf("0x%064x", e.seq), nil
}

func (e *FakeExecutor) WaitMined(ctx context.Context, _ string) (*types.Receipt, error) {
	e.mu.Lock()
	hook := e.waitHook
	e.mu.Unlock()
	if hook != nil {
		if err := hook(ctx); err != nil {
			return nil, err
		}
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

// SetWaitHook injects behavior into the receipt wait, e.g. a deadline expiry.
func (e *FakeExecutor) SetWaitHook(hook func(ctx context.Context) error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.waitHook = hook
}

func (e *FakeExecutor) TotalSupply(_ context.Context) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (e *FakeExecutor) MintCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.minted)
}

// FakeVerifier stands in for on-chain receipt verification.
type FakeVerifier struct {
	mu  sync.Mutex
	err error
}

func NewFakeVerifier() *FakeVerifier {
	return &FakeVerifier{}
}

func (v *FakeVerifier) VerifyMint(_ context.Context, _, _ string, _ int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *FakeVerifier) SetErr(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
}

// ------------------------------------------------------------
// Per-test-process environment setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) *TestEnv {
	postgresInfo := startContainers(t)

	pool, dbConfig := prepareDatabase(t, postgresInfo)

	env, app := buildE2EApp(pool, dbConfig)
	require.NotNil(t, env.Router, "failed to set up router")
	env.DB = pool

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return env
}

// ------------------------------------------------------------
// Container startup
// ------------------------------------------------------------
func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startPostgreSQLContainerOnce(t)

	postgresInfo, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
	require.NoError(t, err, "failed to read PostgreSQL container info")

	return postgresInfo
}

// ------------------------------------------------------------
// Database preparation
// ------------------------------------------------------------
func prepareDatabase(t *testing.T, postgresInfo ContainerInfo) (*pgxpool.Pool, config.DBConfig) {
	// One database per test process
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, postgresInfo.Host, postgresInfo.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "failed to open admin connection")
	defer adminPool.Close()

	var createErr error
	for attempts := range 5 {
		if attempts > 0 {
			waitTime := min(time.Duration(500+attempts*500)*time.Millisecond, 3*time.Second)
			time.Sleep(waitTime)
			slog.Warn("retrying test database creation", "attempt", attempts+1, "error", createErr.Error())
		}
		_, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
	}
	require.NoError(t, createErr, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("failed to open cleanup connection", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
	}

	require.NoError(t, db.Migrate(dbConfig), "failed to apply migrations")

	pool, _, err := db.Connect(dbConfig)
	require.NoError(t, err, "failed to connect to test database")
	require.NotNil(t, pool, "database pool is nil")

	return pool, dbConfig
}

// TestEnv bundles everything a suite needs from the assembled application.
type TestEnv struct {
	Router       *gin.Engine
	DB           *pgxpool.Pool
	Config       config.Config
	MintUC       commands.MintCommands
	ConfirmUC    commands.ConfirmationCommands
	SafeMintUC   commands.SafeMintCommands
	StatsQueries queries.StatsQueries
	Gateway      *FakeGateway
	Executor     *FakeExecutor
	Verifier     *FakeVerifier
}

// ------------------------------------------------------------
// Application assembly for E2E tests. The real bootstrap modules are
// reused; only the DB source, the config, and the external
// collaborators are swapped for test doubles.
// ------------------------------------------------------------
func buildE2EApp(pool *pgxpool.Pool, dbConfig config.DBConfig) (*TestEnv, *fx.App) {
	env := &TestEnv{
		Gateway:  NewFakeGateway(),
		Executor: NewFakeExecutor(),
		Verifier: NewFakeVerifier(),
	}

	testDBModule := fx.Module("testdb",
		fx.Provide(func() *pgxpool.Pool { return pool }),
	)

	testConfigModule := fx.Module("testconfig",
		fx.Provide(
			func() config.Config {
				cfg := config.NewTestConfig()
				cfg.DB = dbConfig
				cfg.ZenoPay = config.ZenoPayConfig{
					APIKey:        "test-api-key",
					WebhookSecret: "test-webhook-secret",
				}
				return cfg
			},
			func(cfg config.Config) config.ChainConfig { return cfg.Chain },
			func(cfg config.Config) config.ZenoPayConfig { return cfg.ZenoPay },
			func(cfg config.Config) config.IssuanceConfig { return cfg.Issuance },
		),
	)

	testChainModule := fx.Module("testchain",
		fx.Provide(
			func() commands.PaymentGateway { return env.Gateway },
			func() commands.MintExecutor { return env.Executor },
			func() commands.MintVerifier { return env.Verifier },
			func() queries.SupplyReader { return env.Executor },
			// Payload construction is pure ABI packing, so the real one runs offline.
			fx.Annotate(
				chain.NewSafePayloadBuilder,
				fx.As(new(commands.SafePayloadBuilder)),
			),
		),
	)

	app := fx.New(
		testDBModule,
		testConfigModule,
		testChainModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.JWTModule,
		components.RepositoryModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&env.Router, &env.Config, &env.MintUC, &env.ConfirmUC, &env.SafeMintUC, &env.StatsQueries),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	return env, app
}

// ------------------------------------------------------------
// Shared container helpers
// ------------------------------------------------------------
func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

// Start the PostgreSQL container once and reuse it across suites.
func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Name:   "postgres-e2e",
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		postgresTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "failed to start PostgreSQL container")

		t.Cleanup(func() {
			if postgresTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := postgresTestContainer.Terminate(ctx); err != nil {
					slog.Warn("failed to terminate PostgreSQL container", "error", err.Error())
				}
			}
		})
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Shared suite setup
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Env *TestEnv
	DB  *pgxpool.Pool
}

func (s *SharedSuite) SetupSuite() {
	s.Env = setupE2EEnvironment(s.T())
	s.DB = s.Env.DB
	require.NotNil(s.T(), s.DB, "failed to set up database")
}

func (s *SharedSuite) SetupSubTest() {
	err := dbtest.ResetDB(s.DB)
	require.NoError(s.T(), err, "Failed to reset database state")
}
