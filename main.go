package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"durak/internal/database"
	"durak/internal/game"
	"durak/internal/server"
)

func main() {
	store, err := database.NewStore(envOr("DURAK_DB", "./durak.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	grace := game.DefaultGrace
	if v := os.Getenv("DURAK_GRACE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("bad DURAK_GRACE %q: %v", v, err)
		}
		grace = d
	}

	manager := game.NewManager(store, grace)
	handler := server.NewHandler(manager)

	http.HandleFunc("/api/create-room", handler.CreateRoomHandler)
	http.HandleFunc("/check-room", handler.CheckRoomHandler)
	http.HandleFunc("/ws", handler.HandleGameWS)
	http.Handle("/", http.FileServer(http.Dir("./static")))

	port := envOr("PORT", "3000")
	log.Printf("durak server listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
