package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	common "github.com/rivio-api/rivio-api/pkg/domain"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: cli <newdb|up|down|steps N|version>")
	}
	cmd := os.Args[1]

	if cmd == "newdb" {
		newDB()
		return
	}

	config := common.LoadConfig()

	m, err := migrate.New("file://migrations", config.DB.URL)
	if err != nil {
		log.Fatal(err)
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		var version uint
		version, _, err = m.Version()
		if err == nil {
			fmt.Printf("schema version: %d\n", version)
		}
	default:
		log.Fatalf("unknown command: %s", cmd)
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}

	log.Println("migration command completed")
}

// newDB creates the target database, connecting to the server's maintenance
// "postgres" database first since a connection can't create the database
// it's already bound to.
func newDB() {
	config := common.LoadConfig()

	u, err := url.Parse(config.DB.URL)
	if err != nil {
		log.Fatal(err)
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	u.Path = "/postgres"

	db, err := sql.Open("postgres", u.String())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %s;", dbName)); err != nil {
		log.Fatal(err)
	}

	fmt.Println("database created successfully")
}
