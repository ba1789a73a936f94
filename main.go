package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mindtrack/mindtrack/auth"
	"github.com/mindtrack/mindtrack/client"
	"github.com/mindtrack/mindtrack/data"
	"github.com/mindtrack/mindtrack/frontend"
	"github.com/mindtrack/mindtrack/server"
)

func main() {
	// Load the .env file
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Error loading .env file")
	}

	// Read the environment variables
	serverURL := os.Getenv("SERVER_URL")
	signingKey := os.Getenv("JWT_SIGNING_KEY")
	addr := os.Getenv("MINDTRACK_ADDR")

	// Set default values if the environment variables are empty
	if signingKey == "" {
		signingKey = "your_default_signing_key"
	}
	if addr == "" {
		addr = "localhost:8080"
	}

	// With no SERVER_URL set, run the embedded demo server and point the
	// client at it.
	if serverURL == "" {
		go func() {
			if err := server.Start(addr, signingKey); err != nil {
				log.Fatal("server: ", err)
			}
		}()
		if err := waitForServer(addr, 5*time.Second); err != nil {
			log.Fatal("server: ", err)
		}
		serverURL = "http://" + addr + "/api"
	}

	api := client.New(serverURL, auth.NewKeyringStore(""))
	svc := data.NewService(api)
	frontend.Run(svc)
}

// waitForServer polls addr until the embedded server accepts connections, so
// the first request cannot race the listener coming up.
func waitForServer(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.DialTimeout("tcp", addr, 250*time.Millisecond)
		if err == nil {
			conn.Close()
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("not reachable on %s after %s: %w", addr, timeout, err)
		}
		time.Sleep(20 * time.Millisecond)
	}
}
