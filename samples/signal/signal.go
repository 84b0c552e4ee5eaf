package main

import (
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/cschleiden/go-cancel"
)

func main() {
	token := cancel.New()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	go func() {
		<-c
		token.Cancel()
	}()

	log.Println("Working, press Ctrl+C to stop")

	items := 0
	for !token.IsCanceled() {
		time.Sleep(100 * time.Millisecond)
		items++
	}

	log.Println("Canceled after", items, "items, cleaning up")
}
