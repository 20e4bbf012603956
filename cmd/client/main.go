package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/ross1116/pokebattlesim/client"
	"github.com/ross1116/pokebattlesim/internal/logging"
)

func main() {
	serverHost := flag.String("host", "localhost", "Server host address")
	serverPort := flag.String("port", "9090", "Server port")
	username := flag.String("user", "", "Your username")
	clearScreen := flag.Bool("clear", false, "Clear the screen before each turn")
	logLevel := flag.String("log-level", "warn", "Log level")

	flag.Parse()
	logging.Setup(*logLevel, nil)

	if *username == "" {
		fmt.Println("Please provide a username with -user flag")
		flag.Usage()
		os.Exit(1)
	}

	config := &client.Config{
		ServerHost:  *serverHost,
		ServerPort:  *serverPort,
		Username:    *username,
		ClearScreen: *clearScreen,
	}

	c := client.New(config)

	setupSignalHandler(c)

	fmt.Printf("Connecting to server %s:%s as %s...\n", *serverHost, *serverPort, *username)
	if err := c.Connect(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to connect")
	}

	fmt.Println("Connected successfully!")

	if err := c.Run(os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("battle ended unexpectedly")
	}
	c.Disconnect()
}

func setupSignalHandler(c *client.Client) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nDisconnecting...")
		c.Disconnect()
		os.Exit(0)
	}()
}
