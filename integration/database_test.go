//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestTbresWithMySQL tests the tbres CLI with a MySQL history backend.
func TestTbresWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "tbres",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/tbres?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("TBRES_HISTORY_BACKEND", "mysql")
	_ = os.Setenv("TBRES_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("TBRES_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("TBRES_HISTORY_DB_CONNECT") }()

	runHistoryRoundTrip(t)
}

// TestTbresWithPostgres tests the tbres CLI with a PostgreSQL history backend.
func TestTbresWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("TBRES_HISTORY_BACKEND", "postgresql")
	_ = os.Setenv("TBRES_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("TBRES_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("TBRES_HISTORY_DB_CONNECT") }()

	runHistoryRoundTrip(t)
}

// runHistoryRoundTrip exercises solve recording and preset storage against the
// configured backend.
func runHistoryRoundTrip(t *testing.T) {
	// Start from a clean slate
	require.NoError(t, runTbresCommand(t, "history", "clear"))

	// Record a couple of solves
	require.NoError(t, runTbresCommand(t, "solve", "--parts", "E:2,R2:2", "--chips", "9"))
	require.NoError(t, runTbresCommand(t, "solve", "--preset", "sample1"))

	// Review the recorded runs
	require.NoError(t, runTbresCommand(t, "history", "list"))
	require.NoError(t, runTbresCommand(t, "history", "status"))

	// Preset round trip
	require.NoError(t, runTbresCommand(t, "preset", "save", "integration-check", "--parts", "E:1,R2:2", "--chips", "9"))
	require.NoError(t, runTbresCommand(t, "preset", "list"))
	require.NoError(t, runTbresCommand(t, "solve", "--preset", "integration-check"))
	require.NoError(t, runTbresCommand(t, "preset", "delete", "integration-check"))
}

func runTbresCommand(t *testing.T, args ...string) error {
	tbresPath := getTbresBinary()
	cmd := exec.Command(tbresPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
