package repository

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgconn"
	_ "github.com/jackc/pgx/v4"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// The integration suite runs against a throwaway Postgres container bound to
// a non-default host port so it never collides with a local dev database.
const (
	pgUser     = "campus"
	pgPassword = "campus_pw"
	pgDatabase = "campus_events_test"
	pgHostPort = "5439"
)

var (
	pool      *dockertest.Pool
	container *dockertest.Resource
	testDB    *sql.DB
	testRepo  DBRepo
)

func testDSN() string {
	return fmt.Sprintf("host=localhost port=%s user=%s password=%s dbname=%s sslmode=disable",
		pgHostPort, pgUser, pgPassword, pgDatabase)
}

func teardown() {
	if container != nil {
		if err := pool.Purge(container); err != nil {
			log.Printf("could not purge postgres container: %s", err)
		}
	}
	if testDB != nil {
		if err := testDB.Close(); err != nil {
			log.Printf("could not close test database: %s", err)
		}
	}
}

func handleRecover(name string) {
	if r := recover(); r != nil {
		log.Printf("Test: %s recovered from panic: %v", name, r)
	}
}

func TestMain(m *testing.M) {
	var code int
	defer func() {
		handleRecover("TestMain")
		teardown()
		os.Exit(code)
	}()

	var err error
	pool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}
	pool.MaxWait = 2 * time.Minute

	opts := dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15",
		Env: []string{
			"POSTGRES_USER=" + pgUser,
			"POSTGRES_PASSWORD=" + pgPassword,
			"POSTGRES_DB=" + pgDatabase,
		},
		ExposedPorts: []string{"5432"},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"5432": {
				{HostIP: "", HostPort: pgHostPort},
			},
		},
	}

	if container, err = pool.RunWithOptions(&opts, func(conf *docker.HostConfig) {
		conf.AutoRemove = true
	}); err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}

	if err := pool.Retry(func() error {
		var err error
		testDB, err = sql.Open("pgx", testDSN())
		if err != nil {
			return err
		}
		return testDB.Ping()
	}); err != nil {
		log.Fatalf("postgres container never became ready: %s", err)
	}

	testRepo = &SqlRepo{DB: testDB}
	if err = testRepo.RunMigrations(pgDatabase); err != nil {
		log.Fatal(err.Error())
	}

	log.Println("test database migrated, running suite")
	code = m.Run()
}
