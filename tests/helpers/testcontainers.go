// testcontainers.go
//
// CrossFit workout and training group tracking service
// Copyright (c) 2026 CrossBox <dev@crossbox.fit> (https://crossbox.fit)
//
// This file is part of wodtracker.
// wodtracker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// wodtracker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with wodtracker.
// If not, see <https://www.gnu.org/licenses/>.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainers holds the database container for integration runs.
type TestContainers struct {
	DBContainer testcontainers.Container
	Host        string
	Port        nat.Port
	Database    string
	User        string
	Password    string
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database container: %v", err)
		}
	}
}

// DSN returns a GORM-ready MySQL connection string.
func (tc *TestContainers) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		tc.User, tc.Password, tc.Host, tc.Port.Port(), tc.Database)
}

// CreateDBContainer starts a MySQL container and provisions a fresh
// database and application user for the test run.
func CreateDBContainer(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()

	image := getEnv("DB_IMAGE", "mysql:8.4")
	rootPassword := getEnv("DB_ROOT_PASSWORD", "root-"+uuid.NewString())
	appUser := getEnv("DB_USER", "wodtracker")
	appPassword := getEnv("DB_PASSWORD", uuid.NewString())
	database := getEnv("DB_DATABASE", "wodtracker_test")

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": rootPassword,
				"MYSQL_DATABASE":      database,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(120 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start database container: %w", err)
	}

	tc := &TestContainers{
		DBContainer: container,
		Database:    database,
		User:        appUser,
		Password:    appPassword,
	}

	host, err := container.Host(ctx)
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to resolve container host: %w", err)
	}
	mappedPort, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to resolve mapped port: %w", err)
	}
	tc.Host = host
	tc.Port = mappedPort

	if err := provisionAppUser(tc, rootPassword); err != nil {
		tc.Terminate(t)
		return nil, err
	}

	return tc, nil
}

// provisionAppUser waits for the server to accept connections, then
// creates the application user. The listening-port wait fires before
// MySQL finishes its init pass, so the ping loop retries.
func provisionAppUser(tc *TestContainers, rootPassword string) error {
	rootDSN := fmt.Sprintf("root:%s@tcp(%s:%s)/", rootPassword, tc.Host, tc.Port.Port())
	db, err := sql.Open("mysql", rootDSN)
	if err != nil {
		return fmt.Errorf("failed to open root connection: %w", err)
	}
	defer db.Close()

	deadline := time.Now().Add(60 * time.Second)
	for {
		if err = db.Ping(); err == nil {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database never became ready: %w", err)
		}
		time.Sleep(time.Second)
	}

	stmts := []string{
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", tc.User, tc.Password),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'%%'", tc.Database, tc.User),
		"FLUSH PRIVILEGES",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w : when executing > %s", err, stmt)
		}
	}
	return nil
}

// DockerAvailable reports whether a Docker daemon is reachable. Used to
// skip integration tests in environments without one.
func DockerAvailable() bool {
	if v := os.Getenv("SKIP_CONTAINER_TESTS"); strings.EqualFold(v, "true") || v == "1" {
		return false
	}
	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return provider.Health(context.Background()) == nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
